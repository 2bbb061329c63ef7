// Package resume maps ResumeRecord values onto Redis hashes and delegates
// filtered KNN search to the FT index over them.
package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentgrid/resumatch/internal/db"
	"github.com/talentgrid/resumatch/internal/domain"
	"github.com/talentgrid/resumatch/internal/domain/search/filter"
	"github.com/talentgrid/resumatch/internal/domain/search/match"
)

// store is the consumer interface for resume storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig holds HNSW index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the storage contracts of the ingest and search usecases.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a resume repository.
func New(s store, vectorDim int) *Repo {
	if vectorDim <= 0 {
		vectorDim = domain.DefaultVectorConfig().Dimensions
	}
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW configures HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the resume FT index if it does not exist yet.
// Safe to call on every startup.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, domain.ResumeIndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     domain.ResumeIndexName,
		Prefixes: []string{domain.ResumeKeyPrefix},
		Fields: []db.IndexField{
			{Name: fieldRole, Type: db.IndexFieldTag, TagCaseSensitive: true},
			{Name: fieldSkills, Type: db.IndexFieldTag, TagSeparator: skillsSeparator, TagCaseSensitive: true},
			{Name: fieldYears, Type: db.IndexFieldNumeric},
			{Name: fieldSummary, Type: db.IndexFieldText},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert stores a resume with its embedding. The hash key is derived from
// the record ID, so re-ingesting an ID overwrites rather than duplicates.
func (r *Repo) Upsert(ctx context.Context, rec domain.ResumeRecord, vector []float32) error {
	key := resumeKey(rec.ID)
	if err := r.store.HSet(ctx, key, buildHashFields(rec, vector)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a stored resume by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.ResumeRecord, error) {
	key := resumeKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.ResumeRecord{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	// HGETALL on a missing key yields an empty map, not an error.
	if len(fields) == 0 {
		return domain.ResumeRecord{}, domain.ErrResumeNotFound
	}
	return parseHashFields(id, fields), nil
}

// Delete removes a stored resume.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := resumeKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrResumeNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// SearchKNN runs a filtered vector similarity search and projects the hits
// into match results, preserving the store's descending-similarity order.
func (r *Repo) SearchKNN(
	ctx context.Context, vector []float32, filters filter.Expression, k int,
) ([]match.Result, error) {
	q := &db.KNNQuery{
		IndexName:    domain.ResumeIndexName,
		Filters:      filters,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{fieldRole, fieldYears, fieldSkills, fieldSummary, "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]match.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		results = append(results, parseEntry(entry))
	}
	return results, nil
}
