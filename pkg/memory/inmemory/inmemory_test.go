package inmemory

import (
	"context"
	"testing"

	"github.com/barekit/praxis/pkg/llm"
)

func TestInMemory_AppendHistoryClear(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Append(ctx, "s1", llm.Message{Role: llm.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "s1", llm.Message{Role: llm.RoleAssistant, Content: "hello"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "s2", llm.Message{Role: llm.RoleUser, Content: "other session"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[1].Content != "hello" {
		t.Errorf("unexpected message order: %+v", history)
	}

	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	history, _ = store.History(ctx, "s1")
	if len(history) != 0 {
		t.Errorf("expected empty history after Clear, got %d", len(history))
	}

	// Other sessions are untouched.
	other, _ := store.History(ctx, "s2")
	if len(other) != 1 {
		t.Errorf("expected 1 message in other session, got %d", len(other))
	}
}

func TestInMemory_HistoryIsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	_ = store.Append(ctx, "s", llm.Message{Role: llm.RoleUser, Content: "original"})
	history, _ := store.History(ctx, "s")
	history[0].Content = "mutated"

	fresh, _ := store.History(ctx, "s")
	if fresh[0].Content != "original" {
		t.Error("History must return a copy")
	}
}
