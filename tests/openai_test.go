package tests

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/barekit/praxis/pkg/agent"
	"github.com/barekit/praxis/pkg/embedding"
	"github.com/barekit/praxis/pkg/llm/openai"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/option"
)

func TestAgent_OpenAI_Integration(t *testing.T) {
	_ = godotenv.Load("../.env") // Try to load .env from root
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping OpenAI integration test: OPENAI_API_KEY not set")
	}

	provider := openai.New(option.WithAPIKey(apiKey))
	provider.SetModel("gpt-4o-mini")

	a := agent.New(provider, agent.WithDebug(true))

	ctx := context.Background()
	result, err := a.Run(ctx, "What is 2+2? Reply with just the number.")
	if err != nil {
		t.Fatalf("Agent Run failed: %v", err)
	}

	if !strings.Contains(result.Output, "4") {
		t.Logf("Expected '4', got '%s'", result.Output)
		// Allow some flexibility in LLM response, but it should contain 4
	}
}

func TestEmbedder_OpenAI_Integration(t *testing.T) {
	_ = godotenv.Load("../.env")
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping OpenAI integration test: OPENAI_API_KEY not set")
	}

	embedder := embedding.NewOpenAI("", option.WithAPIKey(apiKey))

	vectors, err := embedder.Embed(context.Background(), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vectors) != 2 || len(vectors[0]) == 0 {
		t.Errorf("unexpected embedding shape: %d vectors", len(vectors))
	}
}
