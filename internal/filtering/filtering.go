// Package filtering decides which scored postings survive the configured
// content filters and score thresholds.
package filtering

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/job"
	"github.com/mkraev/jobfit/internal/scoring"
)

// Config contains the filter settings. Location and keyword lists are
// OR-matched; the avoid list excludes on any match.
type Config struct {
	MinMatchScore      float64  `mapstructure:"min-match-score"`
	AutoSaveEnabled    bool     `mapstructure:"auto-save-enabled"`
	AutoSaveThreshold  float64  `mapstructure:"auto-save-threshold"`
	PreferredLocations []string `mapstructure:"preferred-locations"`
	KeywordsToMatch    []string `mapstructure:"keywords-to-match"`
	CompaniesToAvoid   []string `mapstructure:"companies-to-avoid"`
}

// Match pairs a posting with its scoring result for filtering.
type Match struct {
	Posting *job.Posting
	Result  *scoring.MatchResult
}

// Decision is the real-time verdict for a single posting. It is computed
// fresh per call and never persisted.
type Decision struct {
	Skip     bool
	AutoSave bool
	Message  string
}

// Step describes the outcome of one filtering predicate over a batch.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Engine applies the configured filters in batch and real-time mode.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

type predicate struct {
	name string
	keep func(Match) bool
}

func (e *Engine) predicates() []predicate {
	return []predicate{
		{"min_match_score", func(m Match) bool { return m.Result.FitScore >= e.cfg.MinMatchScore }},
		{"preferred_locations", func(m Match) bool { return e.matchesLocation(m.Posting) }},
		{"keywords_to_match", func(m Match) bool { return e.matchesKeywords(m.Posting) }},
		{"companies_to_avoid", func(m Match) bool { return !e.avoidedCompany(m.Posting) }},
	}
}

// Batch keeps only matches passing every predicate, reporting per-step
// counts the way a filter pipeline log reads.
func (e *Engine) Batch(matches []Match) ([]Match, []Step) {
	steps := make([]Step, 0, 4)

	for _, pred := range e.predicates() {
		initial := len(matches)
		kept := matches[:0:0]
		for _, match := range matches {
			if pred.keep(match) {
				kept = append(kept, match)
			}
		}
		matches = kept

		step := Step{Name: pred.name, Initial: initial, Dropped: initial - len(matches), Left: len(matches)}
		steps = append(steps, step)

		e.logger.Info("filter step",
			zap.String("name", step.Name),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
	}

	return matches, steps
}

// Decide returns the real-time verdict for one scored posting. Hard
// content filters always take priority over the score threshold: a
// posting failing them is never auto-saved regardless of score.
func (e *Engine) Decide(posting *job.Posting, result *scoring.MatchResult) Decision {
	if !e.matchesLocation(posting) {
		return Decision{Skip: true, Message: fmt.Sprintf("location %q matches no preferred location", posting.Location)}
	}
	if !e.matchesKeywords(posting) {
		return Decision{Skip: true, Message: "posting matches none of the configured keywords"}
	}
	if e.avoidedCompany(posting) {
		return Decision{Skip: true, Message: fmt.Sprintf("company %q is on the avoid list", posting.Company)}
	}

	if !e.cfg.AutoSaveEnabled {
		return Decision{}
	}

	if result.FitScore < e.cfg.AutoSaveThreshold {
		return Decision{Message: fmt.Sprintf("fit score %.1f below auto-save threshold %.1f", result.FitScore, e.cfg.AutoSaveThreshold)}
	}

	return Decision{AutoSave: true}
}

func (e *Engine) matchesLocation(posting *job.Posting) bool {
	if len(e.cfg.PreferredLocations) == 0 {
		return true
	}
	location := strings.ToLower(posting.Location)
	for _, preferred := range e.cfg.PreferredLocations {
		if preferred = strings.ToLower(strings.TrimSpace(preferred)); preferred == "" {
			continue
		}
		if strings.Contains(location, preferred) {
			return true
		}
	}
	return false
}

func (e *Engine) matchesKeywords(posting *job.Posting) bool {
	if len(e.cfg.KeywordsToMatch) == 0 {
		return true
	}
	searchable := strings.ToLower(posting.SearchableText())
	for _, keyword := range e.cfg.KeywordsToMatch {
		if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword == "" {
			continue
		}
		if strings.Contains(searchable, keyword) {
			return true
		}
	}
	return false
}

func (e *Engine) avoidedCompany(posting *job.Posting) bool {
	company := strings.ToLower(posting.Company)
	for _, avoided := range e.cfg.CompaniesToAvoid {
		if avoided = strings.ToLower(strings.TrimSpace(avoided)); avoided == "" {
			continue
		}
		if strings.Contains(company, avoided) {
			return true
		}
	}
	return false
}
