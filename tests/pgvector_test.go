package tests

import (
	"context"
	"os"
	"testing"

	"github.com/barekit/praxis/pkg/knowledge"
	"github.com/barekit/praxis/pkg/knowledge/pgvector"
	"github.com/joho/godotenv"
)

func TestPgvector_SearchScores_Integration(t *testing.T) {
	_ = godotenv.Load("../.env")
	dsn := os.Getenv("PGVECTOR_DSN")
	if dsn == "" {
		t.Skip("Skipping pgvector integration test: PGVECTOR_DSN not set")
	}

	store, err := pgvector.New(dsn)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	// Two fixed vectors, nearly parallel and orthogonal to the query.
	near := make([]float32, 1536)
	far := make([]float32, 1536)
	query := make([]float32, 1536)
	near[0], near[1] = 1, 0.01
	far[1] = 1
	query[0] = 1

	ctx := context.Background()
	docs := []knowledge.Document{
		{ID: "it-near", Content: "close to the query", Metadata: map[string]interface{}{"k": "v"}},
		{ID: "it-far", Content: "orthogonal to the query"},
	}
	if err := store.Upsert(ctx, [][]float32{near, far}, docs); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	results, err := store.Search(ctx, query, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].ID != "it-near" {
		t.Errorf("top hit = %s, want it-near", results[0].ID)
	}
	// Similarity is 1 - cosine distance, so the near doc must score high
	// and strictly above the orthogonal one.
	if results[0].Score < 0.9 {
		t.Errorf("top score = %v, want close to 1", results[0].Score)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores out of order: %v >= %v expected", results[0].Score, results[1].Score)
	}
	if results[0].Metadata["k"] != "v" {
		t.Errorf("metadata lost: %v", results[0].Metadata)
	}
}
