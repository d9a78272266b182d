// Package matchcache memoizes per-posting match results and drives batch
// analysis over the scorer.
package matchcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/job"
	"github.com/mkraev/jobfit/internal/scoring"
)

// Store is the persistence collaborator backing the cache.
type Store interface {
	GetMatch(jobID string) ([]byte, bool, error)
	PutMatch(jobID string, payload []byte) error
	AllMatches() (map[string][]byte, error)
}

// Scorer computes a match result for one posting.
type Scorer interface {
	Score(ctx context.Context, posting *job.Posting) (*scoring.MatchResult, error)
}

// Stats summarizes one batch run.
type Stats struct {
	Scored int
	Cached int
	Failed int
}

// Cache holds all known match results in memory and writes through to the
// store on every put. It is mutated by a single scoring goroutine; a
// parallel reimplementation would need a lock around get-then-put.
type Cache struct {
	store   Store
	scorer  Scorer
	logger  *zap.Logger
	results map[string]*scoring.MatchResult
}

// New loads every persisted result into memory. Rows that no longer
// decode are dropped with a warning rather than failing the run.
func New(store Store, scorer Scorer, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	payloads, err := store.AllMatches()
	if err != nil {
		return nil, fmt.Errorf("loading match cache: %w", err)
	}

	results := make(map[string]*scoring.MatchResult, len(payloads))
	for id, payload := range payloads {
		var result scoring.MatchResult
		if err := json.Unmarshal(payload, &result); err != nil {
			logger.Warn("dropping undecodable cached match",
				zap.String("job_id", id),
				zap.Error(err),
			)
			continue
		}
		results[id] = &result
	}

	logger.Debug("match cache loaded", zap.Int("entries", len(results)))

	return &Cache{store: store, scorer: scorer, logger: logger, results: results}, nil
}

// Get returns the cached result for a job id, if any.
func (c *Cache) Get(jobID string) (*scoring.MatchResult, bool) {
	result, ok := c.results[jobID]
	return result, ok
}

// Put stores the result in memory and writes it through to the store.
func (c *Cache) Put(jobID string, result *scoring.MatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding match %q: %w", jobID, err)
	}
	if err := c.store.PutMatch(jobID, payload); err != nil {
		return err
	}
	c.results[jobID] = result
	return nil
}

// Len reports the number of cached results.
func (c *Cache) Len() int {
	return len(c.results)
}

// AnalyzeSingle returns the cached result when present and useCache is
// set, otherwise scores the posting and writes the result through.
func (c *Cache) AnalyzeSingle(ctx context.Context, posting *job.Posting, useCache bool) (*scoring.MatchResult, error) {
	if useCache {
		if cached, ok := c.Get(posting.ID); ok {
			return cached, nil
		}
	}

	result, err := c.scorer.Score(ctx, posting)
	if err != nil {
		return nil, err
	}
	if err := c.Put(posting.ID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// BatchAnalyze scores every posting, consulting the cache unless
// forceRematch is set. A single posting's failure is logged and skipped;
// its entry stays absent from the cache and the batch continues. Results
// come back sorted by fit score descending with ties keeping input order.
func (c *Cache) BatchAnalyze(ctx context.Context, postings *job.Postings, forceRematch bool) ([]*scoring.MatchResult, Stats) {
	var stats Stats
	results := make([]*scoring.MatchResult, 0, postings.Len())

	for _, posting := range postings.Items {
		if !forceRematch {
			if cached, ok := c.Get(posting.ID); ok {
				results = append(results, cached)
				stats.Cached++
				continue
			}
		}

		result, err := c.scorer.Score(ctx, posting)
		if err != nil {
			c.logger.Warn("scoring failed, skipping posting",
				zap.String("job_id", posting.ID),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}

		if err := c.Put(posting.ID, result); err != nil {
			c.logger.Warn("persisting match failed",
				zap.String("job_id", posting.ID),
				zap.Error(err),
			)
		}

		results = append(results, result)
		stats.Scored++
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].FitScore > results[b].FitScore
	})

	c.logger.Info("batch analysis finished",
		zap.Int("scored", stats.Scored),
		zap.Int("cached", stats.Cached),
		zap.Int("failed", stats.Failed),
	)

	return results, stats
}
