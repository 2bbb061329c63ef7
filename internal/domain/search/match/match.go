// Package match holds the read-only projection returned by the query
// resolver. A Result is built fresh on every query and never mutated.
package match

// Result is a single resume hit.
type Result struct {
	id      string
	score   float64
	role    string
	years   float64
	skills  []string
	summary string
}

// New creates a match result.
func New(id string, score float64, role string, years float64, skills []string, summary string) Result {
	return Result{
		id: id, score: score, role: role,
		years: years, skills: skills, summary: summary,
	}
}

// ID returns the resume identifier.
func (r *Result) ID() string { return r.id }

// Score returns the similarity score (higher = more similar).
func (r *Result) Score() float64 { return r.score }

// Role returns the resume role.
func (r *Result) Role() string { return r.role }

// Years returns the years of experience.
func (r *Result) Years() float64 { return r.years }

// Skills returns the resume skills.
func (r *Result) Skills() []string { return r.skills }

// Summary returns the resume summary text.
func (r *Result) Summary() string { return r.summary }
