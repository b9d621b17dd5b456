package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/barekit/praxis/pkg/config"
	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/llm/openai"
	"github.com/joho/godotenv"
)

func TestProvider_Azure_Integration(t *testing.T) {
	_ = godotenv.Load("../.env")
	cfg, err := config.LoadAzure()
	if err != nil {
		t.Skipf("Skipping Azure integration test: %v", err)
	}

	provider := openai.NewAzure(cfg.Endpoint, cfg.APIVersion, cfg.APIKey, cfg.Deployment)

	ctx := context.Background()
	reply, err := provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: "What is 2+2? Reply with just the number."},
	}, nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !strings.Contains(reply.Content, "4") {
		t.Logf("Expected '4', got '%s'", reply.Content)
	}
	if reply.Usage == nil || reply.Usage.TotalTokens == 0 {
		t.Error("expected usage to be populated")
	}
}

func TestProvider_Azure_Stream_Integration(t *testing.T) {
	_ = godotenv.Load("../.env")
	cfg, err := config.LoadAzure()
	if err != nil {
		t.Skipf("Skipping Azure integration test: %v", err)
	}

	provider := openai.NewAzure(cfg.Endpoint, cfg.APIVersion, cfg.APIKey, cfg.Deployment)

	stream, err := provider.Stream(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Count from 1 to 5."},
	}, nil)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	var b strings.Builder
	for chunk := range stream {
		b.WriteString(chunk)
	}
	if b.Len() == 0 {
		t.Error("expected streamed content")
	}
}
