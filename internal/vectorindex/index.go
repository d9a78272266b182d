// Package vectorindex implements a flat k-nearest-neighbor index over the
// resume corpus embeddings.
package vectorindex

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mkraev/jobfit/internal/embedding"
)

// Hit is a single nearest-neighbor result.
type Hit struct {
	Text       string
	Similarity float64
	Index      int
}

// Index holds one embedding vector per corpus unit and answers top-k
// cosine searches. Vectors are normalized, so similarity is computed as
// the inner product. The index is read-only after Build/Load; a batch run
// never mutates it.
type Index struct {
	embedder embedding.Embedder
	units    []string
	vectors  [][]float32
	logger   *zap.Logger
}

func New(embedder embedding.Embedder, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{embedder: embedder, logger: logger}
}

func (ix *Index) Len() int {
	return len(ix.units)
}

// Units returns the ordered corpus units backing the index.
func (ix *Index) Units() []string {
	return ix.units
}

// Build embeds the provided units and replaces the index contents.
func (ix *Index) Build(ctx context.Context, units []string) error {
	if len(units) == 0 {
		ix.units = nil
		ix.vectors = nil
		return nil
	}

	vectors, err := ix.embedder.Embed(ctx, units)
	if err != nil {
		return fmt.Errorf("embedding %d corpus units: %w", len(units), err)
	}
	if len(vectors) != len(units) {
		return fmt.Errorf("embedder returned %d vectors for %d units", len(vectors), len(units))
	}

	ix.units = append([]string(nil), units...)
	ix.vectors = vectors

	ix.logger.Info("vector index built",
		zap.Int("units", len(units)),
		zap.String("model", ix.embedder.ModelName()),
		zap.Int("dimension", ix.embedder.Dimension()),
	)

	return nil
}

// Search returns, per query, up to k nearest units sorted by similarity
// descending with ties broken by ascending corpus index. k is clamped to
// the corpus size; an empty corpus yields empty result lists.
func (ix *Index) Search(ctx context.Context, queries []string, k int) ([][]Hit, error) {
	results := make([][]Hit, len(queries))
	if len(queries) == 0 {
		return results, nil
	}
	if len(ix.vectors) == 0 || k <= 0 {
		for i := range results {
			results[i] = []Hit{}
		}
		return results, nil
	}

	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	queryVectors, err := ix.embedder.Embed(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("embedding %d queries: %w", len(queries), err)
	}
	if len(queryVectors) != len(queries) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d queries", len(queryVectors), len(queries))
	}

	for qi, queryVector := range queryVectors {
		similarities := make([]float64, len(ix.vectors))
		for i, vector := range ix.vectors {
			similarities[i] = dot(queryVector, vector)
		}

		order := make([]int, len(similarities))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			if similarities[order[a]] != similarities[order[b]] {
				return similarities[order[a]] > similarities[order[b]]
			}
			return order[a] < order[b]
		})

		hits := make([]Hit, 0, k)
		for _, idx := range order[:k] {
			hits = append(hits, Hit{
				Text:       ix.units[idx],
				Similarity: similarities[idx],
				Index:      idx,
			})
		}
		results[qi] = hits
	}

	return results, nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
