// Package knowledge pairs an embedder with a vector store so the RAG
// exercises can ingest documents and retrieve them by semantic similarity.
package knowledge

import (
	"context"

	"github.com/barekit/praxis/pkg/embedding"
)

// Document represents a piece of text with metadata.
type Document struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
	Score    float32                `json:"score,omitempty"` // Similarity score
}

// VectorStore is the interface for storing and retrieving vectors.
type VectorStore interface {
	// Upsert inserts or updates documents and their vectors.
	Upsert(ctx context.Context, vectors [][]float32, documents []Document) error
	// Search searches for similar documents using a query vector.
	Search(ctx context.Context, query []float32, limit int) ([]Document, error)
}

// Base combines an embedder and a vector store.
type Base struct {
	Embedder    embedding.Embedder
	VectorStore VectorStore
}

// NewBase creates a knowledge base.
func NewBase(embedder embedding.Embedder, store VectorStore) *Base {
	return &Base{
		Embedder:    embedder,
		VectorStore: store,
	}
}

// Ingest embeds documents and stores them.
func (b *Base) Ingest(ctx context.Context, docs []Document) error {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := b.Embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	return b.VectorStore.Upsert(ctx, vectors, docs)
}

// Retrieve finds relevant documents for a query.
func (b *Base) Retrieve(ctx context.Context, query string, limit int) ([]Document, error) {
	vectors, err := b.Embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	if len(vectors) == 0 {
		return nil, nil
	}

	return b.VectorStore.Search(ctx, vectors[0], limit)
}
