// Package embedding defines the embedding-provider contract and its
// Gemini implementation.
package embedding

import (
	"context"
	"math"
)

// Embedder computes fixed-dimension embedding vectors for texts. Vectors
// returned by implementations must be L2-normalized so inner product is
// equivalent to cosine similarity.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
	Dimension() int
}

// Normalize scales the vector to unit length in place and returns it.
// Zero vectors are returned unchanged.
func Normalize(vector []float32) []float32 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vector
	}
	norm := math.Sqrt(sum)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}
