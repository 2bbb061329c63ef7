package ingest

import (
	"context"

	"github.com/talentgrid/resumatch/internal/domain"
)

// Upserter defines the storage contract for resume upserts.
type Upserter interface {
	Upsert(ctx context.Context, rec domain.ResumeRecord, vector []float32) error
}

// Embedder vectorizes resume text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
