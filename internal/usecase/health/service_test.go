package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockEmbeddingChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected %s, got %s", Healthy, report.Status)
	}
	if report.Checks["store"] != CheckOK {
		t.Errorf("expected store ok, got %s", report.Checks["store"])
	}
	if report.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding ok, got %s", report.Checks["embedding"])
	}
}

func TestCheck_StoreDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockEmbeddingChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected %s, got %s", Degraded, report.Status)
	}
	if report.Checks["store"] != CheckError {
		t.Errorf("expected store error, got %s", report.Checks["store"])
	}
	if report.Checks["embedding"] != CheckOK {
		t.Errorf("expected embedding ok, got %s", report.Checks["embedding"])
	}
}

func TestCheck_EmbeddingDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockEmbeddingChecker{err: errors.New("timeout")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected %s, got %s", Degraded, report.Status)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding error, got %s", report.Checks["embedding"])
	}
}

func TestCheck_NilEmbeddingCheckerSkipped(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected %s, got %s", Healthy, report.Status)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check must be absent when no checker is configured")
	}
}
