package domain

import "context"

// EmbeddingResult holds a computed embedding with provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text. Implementations must be deterministic for a
// fixed model version: the resolver relies on same text -> same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is optionally implemented by embedders that can probe
// provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
