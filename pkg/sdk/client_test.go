package resumatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIngest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/resumes" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}

		var body struct {
			Resumes []Resume `json:"resumes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(body.Resumes) != 2 || body.Resumes[0].ID != "r1" {
			t.Errorf("unexpected request body: %+v", body)
		}

		json.NewEncoder(w).Encode(IngestReport{
			Results: []IngestResult{
				{ID: "r1", Status: "ok"},
				{ID: "r2", Status: "failed", Error: "invalid resume record"},
			},
			Succeeded: 1,
			Failed:    1,
		})
	}))
	defer server.Close()

	client := New(server.URL)
	report, err := client.Ingest(context.Background(), []Resume{
		{ID: "r1", Summary: "a", Skills: []string{"go"}, Years: 3, Role: "sre"},
		{ID: "r2"},
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if report.Succeeded != 1 || report.Failed != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Results[1].Status != "failed" {
		t.Errorf("unexpected result: %+v", report.Results[1])
	}
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "golang backend" || req.TopK != 10 {
			t.Errorf("unexpected request: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"matches": []Match{
				{ID: "r1", Score: 0.92, Role: "backend engineer"},
			},
			"total": 1,
		})
	}))
	defer server.Close()

	client := New(server.URL)
	matches, err := client.Search(context.Background(), SearchRequest{
		Query: "golang backend",
		TopK:  10,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "r1" {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(map[string]any{"matches": []Match{}, "total": 0})
	}))
	defer server.Close()

	client := New(server.URL, WithAPIKey("secret"))
	if _, err := client.Search(context.Background(), SearchRequest{Query: "q"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"matches": []Match{}, "total": 0})
	}))
	defer server.Close()

	client := New(server.URL + "/")
	if _, err := client.Search(context.Background(), SearchRequest{Query: "q"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestGetResume_NotFoundMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "resume_not_found",
			"message": "resume not found",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.GetResume(context.Background(), "missing")
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "resume_not_found" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_ErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code     string
		status   int
		sentinel error
	}{
		{"invalid_filter", http.StatusBadRequest, ErrInvalidFilter},
		{"validation_failed", http.StatusBadRequest, ErrInvalidRecord},
		{"embedding_unavailable", http.StatusBadGateway, ErrEmbeddingUnavailable},
		{"store_unavailable", http.StatusServiceUnavailable, ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"code": tt.code, "message": "m"})
			}))
			defer server.Close()

			client := New(server.URL)
			_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestClient_UnauthorizedMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "bad_request",
			"message": "invalid api key",
		})
	}))
	defer server.Close()

	client := New(server.URL, WithAPIKey("wrong"))
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeleteResume_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/resumes/r1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	if err := client.DeleteResume(context.Background(), "r1"); err != nil {
		t.Fatalf("DeleteResume failed: %v", err)
	}
}

func TestHealth_DegradedStillDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthStatus{
			Status: "degraded",
			Checks: map[string]string{"store": "error", "embedding": "ok"},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status.Status != "degraded" || status.Checks["store"] != "error" {
		t.Errorf("unexpected status: %+v", status)
	}
}
