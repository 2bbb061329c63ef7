package search

import (
	"context"

	"github.com/talentgrid/resumatch/internal/domain"
	"github.com/talentgrid/resumatch/internal/domain/search/filter"
	"github.com/talentgrid/resumatch/internal/domain/search/match"
)

// Repository defines the storage contract for resume search. Results must
// come back ordered by descending similarity.
type Repository interface {
	SearchKNN(ctx context.Context, vector []float32, filters filter.Expression, k int) ([]match.Result, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
