package embedding

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	vector := Normalize([]float32{3, 4})

	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("expected unit length, got squared norm %v", sum)
	}
	if math.Abs(float64(vector[0])-0.6) > 1e-6 || math.Abs(float64(vector[1])-0.8) > 1e-6 {
		t.Fatalf("unexpected direction: %v", vector)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	vector := Normalize([]float32{0, 0, 0})
	for i, v := range vector {
		if v != 0 {
			t.Fatalf("zero vector changed at %d: %v", i, vector)
		}
	}
}
