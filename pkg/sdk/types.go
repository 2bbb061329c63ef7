package resumatch

// Resume is a resume record submitted for ingestion.
type Resume struct {
	ID      string   `json:"id"`
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
	Years   int      `json:"years"`
	Role    string   `json:"role"`
}

// SearchRequest describes a semantic search query.
type SearchRequest struct {
	Query string `json:"query"`
	// Filters is a single-level filter map: {"role": "...",
	// "years": {"$gte": 3}, "skills": {"$in": [...]}}.
	Filters map[string]any `json:"filters,omitempty"`
	TopK    int            `json:"top_k,omitempty"`
	// MinScore drops matches scoring below it (0 accepts everything).
	MinScore float64 `json:"min_score,omitempty"`
}

// Match is a single search hit.
type Match struct {
	ID      string   `json:"id"`
	Score   float64  `json:"score"`
	Role    string   `json:"role"`
	Years   float64  `json:"years"`
	Skills  []string `json:"skills"`
	Summary string   `json:"summary"`
}

// IngestResult reports the outcome of one record in a batch.
type IngestResult struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "ok" or "failed"
	Error  string `json:"error,omitempty"`
}

// IngestReport is the per-batch ingestion outcome.
type IngestReport struct {
	Results   []IngestResult `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok" or "degraded"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}
