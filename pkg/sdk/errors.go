package resumatch

import (
	"errors"
	"fmt"
)

// Sentinel errors matching the server's error codes.
// Use errors.Is() to check.
var (
	ErrInvalidFilter        = errors.New("invalid filter expression")
	ErrInvalidRecord        = errors.New("invalid resume record")
	ErrResumeNotFound       = errors.New("resume not found")
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	ErrStoreUnavailable     = errors.New("vector store unavailable")
	ErrUnauthorized         = errors.New("unauthorized")
)

// APIError is an error response from the resumatch API.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable error code
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resumatch: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Is maps API error codes onto the package sentinels so callers can use
// errors.Is without inspecting codes themselves.
func (e *APIError) Is(target error) bool {
	sentinel, ok := codeSentinels[e.Code]
	if ok && target == sentinel {
		return true
	}
	return e.Status == 401 && target == ErrUnauthorized
}

var codeSentinels = map[string]error{
	"invalid_filter":        ErrInvalidFilter,
	"validation_failed":     ErrInvalidRecord,
	"resume_not_found":      ErrResumeNotFound,
	"embedding_unavailable": ErrEmbeddingUnavailable,
	"store_unavailable":     ErrStoreUnavailable,
}
