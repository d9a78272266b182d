// Package scoring combines keyword overlap, semantic coverage and
// strength, seniority alignment and a must-have penalty into a single
// 0-100 fit score per posting.
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/extract"
	"github.com/mkraev/jobfit/internal/job"
	"github.com/mkraev/jobfit/internal/logger"
	"github.com/mkraev/jobfit/internal/vectorindex"
)

// Searcher is the similarity-search side of the vector index.
type Searcher interface {
	Search(ctx context.Context, queries []string, k int) ([][]vectorindex.Hit, error)
}

// TechExtractor is the technology-extraction collaborator. It must return
// canonical names and an empty set on failure, never an error.
type TechExtractor interface {
	Extract(text string) map[string]struct{}
}

// ErrNoRequirements marks results for postings that yielded no
// extractable requirements. It is a marker string, not a Go error: the
// posting still scores (zero), and the batch continues.
const ErrNoRequirements = "no extractable requirements"

// Scorer scores postings against a fixed resume corpus.
type Scorer struct {
	searcher    Searcher
	tech        TechExtractor
	cfg         Config
	logger      *zap.Logger
	resumeTechs map[string]struct{}
}

// NewScorer builds a scorer. The resume technology set is computed once
// from the corpus units since the corpus is immutable during a run.
func NewScorer(searcher Searcher, tech TechExtractor, corpusUnits []string, cfg Config, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		searcher:    searcher,
		tech:        tech,
		cfg:         cfg,
		logger:      logger,
		resumeTechs: tech.Extract(strings.Join(corpusUnits, "\n")),
	}
}

// Score produces the full match breakdown for one posting. A posting with
// no extractable requirements returns a zero-score result with the Error
// marker set and does not touch the index. A search failure is returned
// as an error so the caller can fail that job alone and continue.
func (s *Scorer) Score(ctx context.Context, posting *job.Posting) (*MatchResult, error) {
	set := extract.Extract(posting)

	if set.Empty() {
		s.logger.Debug("posting yielded no requirements", zap.String("job_id", posting.ID))
		return &MatchResult{
			JobID:               posting.ID,
			MatchedBullets:      []MatchedBullet{},
			MatchedTechnologies: []string{},
			MissingTechnologies: []string{},
			Error:               ErrNoRequirements,
		}, nil
	}

	combined := posting.CombinedText()

	keywordOverlap, matchedTechs, missingTechs := s.keywordOverlap(combined)

	hits, err := s.searcher.Search(ctx, set.All, s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("searching requirements for job %q: %w", posting.ID, err)
	}

	covered := 0
	bullets := make(map[string]float64)
	for _, requirementHits := range hits {
		requirementCovered := false
		for _, hit := range requirementHits {
			if hit.Similarity < s.cfg.SimilarityThreshold {
				continue
			}
			requirementCovered = true
			if existing, ok := bullets[hit.Text]; !ok || hit.Similarity > existing {
				bullets[hit.Text] = hit.Similarity
			}
		}
		if requirementCovered {
			covered++
		}
	}

	coverage := float64(covered) / float64(len(set.All))
	strength := s.semanticStrength(bullets)
	matchedBullets := sortedBullets(bullets)
	seniority := seniorityAlignment(combined, matchedBullets)

	missingMustHaves, err := s.missingMustHaves(ctx, set.MustHave)
	if err != nil {
		return nil, fmt.Errorf("checking must-haves for job %q: %w", posting.ID, err)
	}
	penalty := float64(missingMustHaves) * s.cfg.PenaltyPerMissingMustHave

	fit := 100*(s.cfg.Weights.Keyword*keywordOverlap+
		s.cfg.Weights.Coverage*coverage+
		s.cfg.Weights.Strength*strength+
		s.cfg.Weights.Seniority*seniority) - 100*penalty
	fit = clamp(fit, 0, 100)

	result := &MatchResult{
		JobID:                posting.ID,
		FitScore:             round1(fit),
		Coverage:             round1(100 * coverage),
		SkillMatch:           round1(100 * strength),
		KeywordMatch:         round1(100 * keywordOverlap),
		SeniorityAlignment:   round1(100 * seniority),
		MatchedBullets:       matchedBullets,
		MatchedTechnologies:  matchedTechs,
		MissingTechnologies:  missingTechs,
		MissingMustHaves:     missingMustHaves,
		MustHavePenalty:      round1(100 * penalty),
		RequirementsAnalyzed: len(set.All),
	}

	fields := []zap.Field{
		zap.String("job_id", posting.ID),
		zap.Float64("fit_score", result.FitScore),
		zap.Float64("coverage", result.Coverage),
		zap.Float64("keyword_match", result.KeywordMatch),
		zap.Int("missing_must_haves", missingMustHaves),
	}
	if len(matchedBullets) > 0 {
		fields = append(fields, zap.String("top_bullet", logger.TruncateForLog(matchedBullets[0].Text, 80)))
	}
	s.logger.Debug("posting scored", fields...)

	return result, nil
}

// keywordOverlap compares the posting's technologies against the resume's.
// An empty job technology set contributes zero rather than dividing by it.
func (s *Scorer) keywordOverlap(combined string) (float64, []string, []string) {
	jobTechs := s.tech.Extract(combined)
	if len(jobTechs) == 0 {
		return 0, []string{}, []string{}
	}

	matched := make([]string, 0, len(jobTechs))
	missing := make([]string, 0)
	for t := range jobTechs {
		if _, ok := s.resumeTechs[t]; ok {
			matched = append(matched, t)
		} else {
			missing = append(missing, t)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	return float64(len(matched)) / float64(len(jobTechs)), matched, missing
}

// semanticStrength averages the matched-bullet similarities and rescales
// them from [threshold, 1] to [0, 1]. No matches means zero strength.
func (s *Scorer) semanticStrength(bullets map[string]float64) float64 {
	if len(bullets) == 0 {
		return 0
	}

	var sum float64
	for _, similarity := range bullets {
		sum += similarity
	}
	avg := sum / float64(len(bullets))

	scaled := (avg - s.cfg.SimilarityThreshold) / (1 - s.cfg.SimilarityThreshold)
	return clamp(scaled, 0, 1)
}

// missingMustHaves re-runs the search restricted to must-have lines; a
// must-have with no hit at the threshold counts as missing.
func (s *Scorer) missingMustHaves(ctx context.Context, mustHave []string) (int, error) {
	if len(mustHave) == 0 {
		return 0, nil
	}

	hits, err := s.searcher.Search(ctx, mustHave, s.cfg.TopK)
	if err != nil {
		return 0, err
	}

	missing := 0
	for _, requirementHits := range hits {
		found := false
		for _, hit := range requirementHits {
			if hit.Similarity >= s.cfg.SimilarityThreshold {
				found = true
				break
			}
		}
		if !found {
			missing++
		}
	}
	return missing, nil
}

func sortedBullets(bullets map[string]float64) []MatchedBullet {
	matched := make([]MatchedBullet, 0, len(bullets))
	for text, similarity := range bullets {
		matched = append(matched, MatchedBullet{Text: text, Similarity: similarity})
	}
	sort.Slice(matched, func(a, b int) bool {
		if matched[a].Similarity != matched[b].Similarity {
			return matched[a].Similarity > matched[b].Similarity
		}
		return matched[a].Text < matched[b].Text
	})
	return matched
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
