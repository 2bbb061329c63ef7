package domain

import (
	"fmt"
	"strings"
)

// ResumeRecord is a raw resume as supplied by the caller. The ID is
// caller-assigned and immutable once ingested; re-ingesting the same ID
// overwrites the stored record (upsert, never append).
type ResumeRecord struct {
	ID      string   `json:"id"`
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
	Years   int      `json:"years"`
	Role    string   `json:"role"`
}

// Validate checks the record before any collaborator is contacted.
func (r ResumeRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("record id is required: %w", ErrInvalidRecord)
	}
	if r.Years < 0 {
		return fmt.Errorf("years must be non-negative, got %d: %w", r.Years, ErrInvalidRecord)
	}
	return nil
}

// EnrichedText builds the text that is embedded for this record. Role and
// skills are spelled out so the vector carries them alongside the free-form
// summary.
func (r ResumeRecord) EnrichedText() string {
	return fmt.Sprintf(
		"Role: %s. Skills: %s. Summary: %s",
		r.Role, strings.Join(r.Skills, ", "), r.Summary,
	)
}
