// Package search resolves recruiter queries: free text plus an optional
// filter expression in, ranked match results out.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/talentgrid/resumatch/internal/domain"
	"github.com/talentgrid/resumatch/internal/domain/search/filter"
	"github.com/talentgrid/resumatch/internal/domain/search/match"
)

const (
	// DefaultTopK is the result count when the caller passes none.
	DefaultTopK = 5
	// MaxTopK caps the result count per query.
	MaxTopK = 100

	// candidatePoolFactor over-fetches KNN candidates so that strict
	// post-verification cannot starve the result set.
	candidatePoolFactor = 5
)

// Service is the query resolver. Stateless: every call is an independent
// request/response interaction with the two collaborators.
type Service struct {
	repo     Repository
	embed    Embedder
	minScore float64
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// WithMinScore configures the minimum-relevance threshold. Zero (the
// default) accepts every returned match.
func (s *Service) WithMinScore(minScore float64) *Service {
	if minScore > 0 {
		s.minScore = minScore
	}
	return s
}

// Query returns up to topK resumes most similar to text that satisfy
// filters. An empty or whitespace-only query carries no semantic signal and
// yields an empty result without contacting either collaborator; so does a
// filter that can match nothing. Fewer than topK hits is not an error.
func (s *Service) Query(
	ctx context.Context, text string, filters filter.Expression, topK int,
) ([]match.Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if filters.MatchesNothing() {
		return nil, nil
	}

	embResult, err := s.embed.Embed(ctx, text)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := s.repo.SearchKNN(ctx, embResult.Embedding, filters, topK*candidatePoolFactor)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("search knn: %w", err)
	}

	results := s.postProcess(candidates, filters)
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// postProcess re-verifies every candidate against the filter (the store's
// pre-filter is trusted but never the final word: no false positive may
// pass), drops matches below the relevance threshold, and breaks score ties
// deterministically. The store's descending-similarity order is preserved
// otherwise.
func (s *Service) postProcess(candidates []match.Result, filters filter.Expression) []match.Result {
	results := make([]match.Result, 0, len(candidates))
	for _, c := range candidates {
		if !filters.Matches(c.Role(), c.Years(), c.Skills()) {
			continue
		}
		if s.minScore > 0 && c.Score() < s.minScore {
			continue
		}
		results = append(results, c)
	}

	breakTies(results)
	return results
}

// breakTies orders runs of numerically equal scores by ascending ID so that
// repeated identical queries produce identical output. Unequal scores are
// never reordered: the store is the ranking authority.
func breakTies(results []match.Result) {
	i := 0
	for i < len(results) {
		j := i + 1
		for j < len(results) && results[j].Score() == results[i].Score() {
			j++
		}
		if j-i > 1 {
			run := results[i:j]
			sort.Slice(run, func(a, b int) bool {
				return run[a].ID() < run[b].ID()
			})
		}
		i = j
	}
}
