package chain

import (
	"context"
	"strings"
	"testing"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/prompt"
)

// mockProvider replays canned responses and records the prompts it saw.
type mockProvider struct {
	responses []string
	prompts   []string
	calls     int
}

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Message, error) {
	m.prompts = append(m.prompts, messages[len(messages)-1].Content)
	content := "no more responses"
	if m.calls < len(m.responses) {
		content = m.responses[m.calls]
	}
	m.calls++
	return &llm.Message{Role: llm.RoleAssistant, Content: content}, nil
}

func (m *mockProvider) Stream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan string, error) {
	ch := make(chan string)
	close(ch)
	return ch, nil
}

func TestChain_Run(t *testing.T) {
	mock := &mockProvider{responses: []string{"  A catchy idea.  "}}
	c := New(prompt.New("Idea for {topic}"), mock)

	out, err := c.Run(context.Background(), map[string]string{"topic": "Go"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "A catchy idea." {
		t.Errorf("Run() = %q", out)
	}
	if mock.prompts[0] != "Idea for Go" {
		t.Errorf("prompt = %q", mock.prompts[0])
	}
}

func TestChain_Run_MissingVariable(t *testing.T) {
	c := New(prompt.New("Idea for {topic}"), &mockProvider{})

	if _, err := c.Run(context.Background(), nil); err == nil {
		t.Error("expected error for missing variable")
	}
}

func TestSequential_Run(t *testing.T) {
	mock := &mockProvider{responses: []string{"the idea", "the outline"}}

	seq := NewSequential(
		Step{Chain: New(prompt.New("Idea for {topic}"), mock), OutputVar: "idea"},
		Step{Chain: New(prompt.New("Outline for {idea}"), mock), OutputVar: "outline"},
	)

	vars, last, err := seq.Run(context.Background(), map[string]string{"topic": "Go"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if last != "the outline" {
		t.Errorf("last = %q", last)
	}
	if vars["idea"] != "the idea" || vars["outline"] != "the outline" {
		t.Errorf("vars = %v", vars)
	}
	// The second prompt must contain the first step's output.
	if !strings.Contains(mock.prompts[1], "the idea") {
		t.Errorf("second prompt = %q, want it to embed the idea", mock.prompts[1])
	}
}
