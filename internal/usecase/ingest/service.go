// Package ingest normalizes raw resume records, embeds them and submits
// them as upserts to the vector store. Strictly a normalize-embed-store
// pipeline: no ranking or filtering logic lives here.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/talentgrid/resumatch/internal/domain"
	"github.com/talentgrid/resumatch/internal/domain/batch"
)

// Batch limits.
const (
	// MaxBatchSize is the maximum number of records per ingestion call.
	MaxBatchSize = 500
	// DefaultConcurrency bounds parallel embed+upsert workers per batch.
	DefaultConcurrency = 4
)

// Service handles batch resume ingestion with per-record error reporting.
type Service struct {
	repo         Upserter
	embed        Embedder
	maxBatchSize int
	concurrency  int
}

// New creates an ingest service.
func New(repo Upserter, embed Embedder) *Service {
	return &Service{
		repo:         repo,
		embed:        embed,
		maxBatchSize: MaxBatchSize,
		concurrency:  DefaultConcurrency,
	}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithConcurrency bounds parallel embed+upsert workers per batch.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Ingest validates, embeds and upserts each record, returning one result
// per record in input order. A malformed record is skipped and the batch
// continues; each record's embed+upsert is independent, so valid records
// run on a bounded worker pool. Once the embedding provider is unreachable
// the remaining records fail fast without contacting it again.
func (s *Service) Ingest(ctx context.Context, records []domain.ResumeRecord) []batch.Result {
	results := make([]batch.Result, len(records))

	if len(records) > s.maxBatchSize {
		err := fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidRecord)
		for i, rec := range records {
			results[i] = batch.NewFailed(rec.ID, err)
		}
		return results
	}

	type indexed struct {
		idx int
		rec domain.ResumeRecord
	}

	work := make(chan indexed)
	var wg sync.WaitGroup
	var embedDown atomic.Pointer[error]

	workers := s.concurrency
	if workers > len(records) {
		workers = len(records)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				results[item.idx] = s.ingestOne(ctx, item.rec, &embedDown)
			}
		}()
	}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			results[i] = batch.NewFailed(rec.ID, err)
			continue
		}
		work <- indexed{idx: i, rec: rec}
	}
	close(work)
	wg.Wait()

	return results
}

// ingestOne embeds and upserts a single validated record.
func (s *Service) ingestOne(
	ctx context.Context, rec domain.ResumeRecord, embedDown *atomic.Pointer[error],
) batch.Result {
	if errPtr := embedDown.Load(); errPtr != nil {
		return batch.NewFailed(rec.ID, *errPtr)
	}

	embResult, err := s.embed.Embed(ctx, rec.EnrichedText())
	if err != nil {
		err = fmt.Errorf("vectorize %s: %w", rec.ID, err)
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			embedDown.Store(&err)
		}
		return batch.NewFailed(rec.ID, err)
	}

	if err := s.repo.Upsert(ctx, rec, embResult.Embedding); err != nil {
		return batch.NewFailed(rec.ID, fmt.Errorf("upsert %s: %w", rec.ID, err))
	}

	return batch.NewOK(rec.ID)
}
