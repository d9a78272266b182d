package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel     = "gemini-embedding-001"
	defaultDimension = 768

	// The embeddings API rejects oversized batches; larger corpora are
	// embedded in chunks of this size.
	maxBatchSize = 100
)

// Gemini embeds texts with the Google GenAI embeddings API.
type Gemini struct {
	client    *genai.Client
	modelName string
	dimension int
}

// NewGemini creates an embedder for the Gemini API backend. Empty model or
// dimension fall back to the package defaults.
func NewGemini(ctx context.Context, apiKey, model string, dimension int) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if dimension <= 0 {
		dimension = defaultDimension
	}

	return &Gemini{client: client, modelName: model, dimension: dimension}, nil
}

func (g *Gemini) ModelName() string { return g.modelName }

func (g *Gemini) Dimension() int { return g.dimension }

// Embed returns one normalized vector per input text, in input order.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := g.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

func (g *Gemini) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	dimension := int32(g.dimension)
	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embeddings api returned %d vectors for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, 0, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("embeddings api returned an empty vector at position %d", i)
		}
		if len(emb.Values) != g.dimension {
			return nil, fmt.Errorf("embeddings api returned dimension %d, expected %d", len(emb.Values), g.dimension)
		}
		// Truncated-dimension embeddings are not normalized by the API.
		vectors = append(vectors, Normalize(emb.Values))
	}

	return vectors, nil
}
