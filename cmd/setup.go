package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/embedding"
	"github.com/mkraev/jobfit/internal/resume"
	"github.com/mkraev/jobfit/internal/secrets"
	"github.com/mkraev/jobfit/internal/store"
	"github.com/mkraev/jobfit/internal/vectorindex"
)

// buildCorpus assembles the resume corpus from the configured source and
// skill categories, falling back to cached resume text in the store.
func buildCorpus(config *Config, st *store.Store, logger *zap.Logger) ([]string, error) {
	var source resume.Source
	var skills []resume.SkillCategory

	if config.Resume != nil {
		if config.Resume.File != "" {
			source = &resume.FileSource{Path: config.Resume.File}
		}
		skills = config.Resume.Skills
	}

	builder := resume.NewBuilder(source, st, skills, logger)
	units, err := builder.Build()
	if errors.Is(err, resume.ErrNotFound) {
		return nil, fmt.Errorf("no resume source and no cached resume text: set resume.file in the config and rerun: %w", err)
	}
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, errors.New("resume corpus is empty; nothing to score against")
	}

	return units, nil
}

func newEmbedder(ctx context.Context, config *Config) (embedding.Embedder, error) {
	var model string
	var dimension int
	var keyFile string

	if config.Embedding != nil {
		model = config.Embedding.Model
		dimension = config.Embedding.Dimension
		keyFile = config.Embedding.APIKeyFile
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		Env:  "GEMINI_API_KEY",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY or embedding.api-key-file)", err)
	}

	return embedding.NewGemini(ctx, apiKey, model, dimension)
}

// prepareIndex loads the persisted vector index when it is compatible and
// still matches the corpus, rebuilding otherwise. A model or dimension
// mismatch is fatal and requires an explicit `jobfit index build`.
func prepareIndex(ctx context.Context, embedder embedding.Embedder, units []string, dir string, logger *zap.Logger) (*vectorindex.Index, error) {
	index := vectorindex.New(embedder, logger)

	if !vectorindex.Exists(dir) {
		logger.Info("no persisted index found, building", zap.String("dir", dir))
		return index, buildAndSave(ctx, index, units, dir)
	}

	if err := index.Load(dir); err != nil {
		var mismatch *vectorindex.MismatchError
		if errors.As(err, &mismatch) {
			return nil, fmt.Errorf("%w (run `%s index build` to rebuild with the configured model)", mismatch, app)
		}
		logger.Warn("persisted index unreadable, rebuilding", zap.Error(err))
		return index, buildAndSave(ctx, index, units, dir)
	}

	if !sameUnits(index.Units(), units) {
		logger.Info("resume corpus changed since the index was built, rebuilding",
			zap.Int("indexed_units", index.Len()),
			zap.Int("corpus_units", len(units)),
		)
		return index, buildAndSave(ctx, index, units, dir)
	}

	return index, nil
}

func buildAndSave(ctx context.Context, index *vectorindex.Index, units []string, dir string) error {
	if err := index.Build(ctx, units); err != nil {
		return err
	}
	return index.Save(dir)
}

func sameUnits(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
