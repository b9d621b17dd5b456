package memory

import (
	"testing"

	"github.com/barekit/praxis/pkg/llm"
)

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	b.AddPair("hi", "hello")
	b.AddPair("how are you?", "fine")

	messages := b.Messages()
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleUser || messages[0].Content != "hi" {
		t.Errorf("unexpected first message: %+v", messages[0])
	}
	if messages[3].Role != llm.RoleAssistant || messages[3].Content != "fine" {
		t.Errorf("unexpected last message: %+v", messages[3])
	}

	b.Clear()
	if len(b.Messages()) != 0 {
		t.Error("expected empty buffer after Clear")
	}
}

func TestWindow_Eviction(t *testing.T) {
	w := NewWindow(2)
	w.AddPair("one", "1")
	w.AddPair("two", "2")
	w.AddPair("three", "3")

	messages := w.Messages()
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	// The oldest exchange fell off.
	if messages[0].Content != "two" {
		t.Errorf("first retained message = %q, want two", messages[0].Content)
	}
}
