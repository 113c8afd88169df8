package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driving"
	"github.com/custodia-labs/wardhub-core/internal/metrics"
	"github.com/custodia-labs/wardhub-core/internal/normalisers"
)

// Ensure globalSearchService implements GlobalSearchService
var _ driving.GlobalSearchService = (*globalSearchService)(nil)

// GlobalSearchConfig tunes the global search
type GlobalSearchConfig struct {
	// Timeout bounds the whole fan-out; zero disables it
	Timeout time.Duration
	Weights FieldWeights
}

// DefaultGlobalSearchConfig returns the production defaults
func DefaultGlobalSearchConfig() GlobalSearchConfig {
	return GlobalSearchConfig{
		Timeout: 3 * time.Second,
		Weights: DefaultFieldWeights(),
	}
}

// globalSearchService implements the GlobalSearchService interface
type globalSearchService struct {
	sources  []driven.CandidateSource
	scorer   *Scorer
	resolver *VisibilityResolver
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGlobalSearchService creates a new GlobalSearchService over the given sources
func NewGlobalSearchService(
	sources []driven.CandidateSource,
	resolver *VisibilityResolver,
	cfg GlobalSearchConfig,
	logger *zap.Logger,
) driving.GlobalSearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &globalSearchService{
		sources:  sources,
		scorer:   NewScorer(cfg.Weights),
		resolver: resolver,
		timeout:  cfg.Timeout,
		logger:   logger.Named("search"),
	}
}

// Search runs every source concurrently, scores the survivors and ranks each group
func (s *globalSearchService) Search(ctx context.Context, caller domain.AuthorizationContext, query string, limit int) (*domain.GlobalSearchResult, error) {
	start := time.Now()
	trimmed := strings.TrimSpace(query)
	result := domain.NewEmptySearchResult(trimmed)

	tokens := normalisers.Tokenize(trimmed)
	if len(tokens) == 0 || !authenticated(caller) {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return result, nil
	}
	limit = domain.ClampSearchLimit(limit)

	candidates, err := s.fetchAll(ctx, caller)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("global search failed",
			zap.Int("tokens", len(tokens)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	for i, src := range s.sources {
		result.SetGroup(s.rank(src.Type(), candidates[i], tokens, limit, caller))
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	s.logger.Debug("global search",
		zap.Int("tokens", len(tokens)),
		zap.Int("limit", limit),
		zap.Any("counts", result.Counts),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

// fetchAll fans out to every source under one deadline. Any failure, including
// cancellation, fails the whole call so no group is silently dropped.
func (s *globalSearchService) fetchAll(ctx context.Context, caller domain.AuthorizationContext) ([][]*domain.Candidate, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	results := make([][]*domain.Candidate, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		g.Go(func() error {
			fetchStart := time.Now()
			candidates, err := src.FetchCandidates(gctx, caller)
			metrics.ObserveSourceFetch(string(src.Type()), fetchStart, err)
			if err != nil {
				return sourceError(src.Type(), err)
			}
			results[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("global search: %w", err)
	}
	return results, nil
}

// sourceError keeps context errors recognisable and tags everything else as unavailable
func sourceError(t domain.EntityType, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", t, err)
	}
	return fmt.Errorf("%s: %w: %w", t, domain.ErrSourceUnavailable, err)
}

// rank scores, deduplicates, sorts and truncates one group
func (s *globalSearchService) rank(t domain.EntityType, candidates []*domain.Candidate, tokens []string, limit int, caller domain.AuthorizationContext) domain.ResultGroup {
	seen := make(map[string]struct{}, len(candidates))
	hits := make([]*domain.ScoredHit, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		score, ok := s.scorer.Score(c, tokens)
		if !ok {
			continue
		}
		seen[c.ID] = struct{}{}
		hits = append(hits, s.toHit(c, score, caller))
	}

	SortHits(hits)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return domain.ResultGroup{Type: t, Hits: hits, Count: len(hits)}
}

func (s *globalSearchService) toHit(c *domain.Candidate, score int, caller domain.AuthorizationContext) *domain.ScoredHit {
	hit := &domain.ScoredHit{
		Type:     c.Type,
		ID:       c.ID,
		Title:    c.Title,
		Subtitle: c.Subtitle,
		URL:      c.URL,
		Score:    score,
		Metadata: c.Metadata,
		SortKey:  normalisers.Fold(c.Title),
	}
	if c.Person != nil {
		hit.Contact = s.contactFields(c.Person, caller)
	}
	return hit
}

// contactFields re-checks visibility at render time; private fields stay nil unless granted
func (s *globalSearchService) contactFields(p *domain.Person, caller domain.AuthorizationContext) *domain.ContactFields {
	contact := &domain.ContactFields{
		WorkPhone: p.WorkPhone,
		WorkEmail: p.WorkEmail,
	}
	if !s.resolver.ResolvePerson(p, caller).PrivateContact {
		return contact
	}
	if p.PrivatePhone != "" {
		phone := p.PrivatePhone
		contact.PrivatePhone = &phone
	}
	if p.PrivateEmail != "" {
		email := p.PrivateEmail
		contact.PrivateEmail = &email
	}
	return contact
}

// SortHits orders hits by score descending, then folded title, then id
func SortHits(hits []*domain.ScoredHit) {
	slices.SortStableFunc(hits, func(a, b *domain.ScoredHit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SortKey, b.SortKey); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
