// Package embedding generates text embeddings and provides the small
// amount of vector math the exercises need: cosine similarity, per-vector
// stats, and a PCA projection for plotting.
package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Embedder is the interface for generating embeddings.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAI implements Embedder with the openai-go client. Pointing the client
// at Gemini's OpenAI-compatible base URL works the same way.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an embedder. An empty model falls back to
// text-embedding-3-small.
func NewOpenAI(model string, opts ...option.RequestOption) *OpenAI {
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}
	client := openai.NewClient(opts...)
	return &OpenAI{
		client: &client,
		model:  model,
	}
}

// Embed generates embeddings for the given texts in one batch call.
func (e *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: e.model,
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		embeddings[i] = vec
	}

	return embeddings, nil
}
