// Package batch holds per-item outcomes for batch ingestion.
package batch

// Result is the outcome of one record in a batch.
type Result struct {
	id  string
	err error
}

// NewOK creates a successful result.
func NewOK(id string) Result {
	return Result{id: id}
}

// NewFailed creates a failed result.
func NewFailed(id string, err error) Result {
	return Result{id: id, err: err}
}

// ID returns the record identifier.
func (r Result) ID() string { return r.id }

// Err returns the failure, or nil on success.
func (r Result) Err() error { return r.err }

// OK reports whether the record was ingested.
func (r Result) OK() bool { return r.err == nil }
