package domain

import "errors"

var (
	// ErrInvalidFilter signals a malformed or unsupported filter predicate.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidRecord signals a malformed ingestion record.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrEmbeddingUnavailable signals an unreachable or failing embedding provider.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrStoreUnavailable signals an unreachable or failing vector store.
	ErrStoreUnavailable = errors.New("vector store unavailable")
	// ErrResumeNotFound signals a missing resume.
	ErrResumeNotFound = errors.New("resume not found")
)
