package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/memory/inmemory"
	"github.com/barekit/praxis/pkg/tools"
)

type mockProvider struct {
	responses      []llm.Message
	callCount      int
	streamChunks   []string
	sawTools       bool
	lastMessages   []llm.Message
	err            error
}

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastMessages = messages
	if opts != nil && len(opts.Tools) > 0 {
		m.sawTools = true
	}
	if m.callCount >= len(m.responses) {
		return &llm.Message{Role: llm.RoleAssistant, Content: "No more responses"}, nil
	}
	resp := m.responses[m.callCount]
	m.callCount++
	return &resp, nil
}

func (m *mockProvider) Stream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan string, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan string, len(m.streamChunks))
	for _, c := range m.streamChunks {
		ch <- c
	}
	close(ch)
	return ch, nil
}

type calculatorArgs struct {
	A int `json:"a"`
	B int `json:"b"`
}

func addFn(args calculatorArgs) (string, error) {
	return fmt.Sprintf("%d", args.A+args.B), nil
}

func TestAgent_Run_ToolLoop(t *testing.T) {
	mock := &mockProvider{
		responses: []llm.Message{
			{
				Role: llm.RoleAssistant,
				ToolCalls: []llm.ToolCall{
					{
						ID:   "call_1",
						Type: "function",
						Function: llm.Function{
							Name:      "add",
							Arguments: `{"a": 2, "b": 2}`,
						},
					},
				},
			},
			{
				Role:    llm.RoleAssistant,
				Content: "The answer is 4",
			},
		},
	}

	addTool, err := tools.New("add", "Adds two numbers", addFn)
	if err != nil {
		t.Fatalf("failed to create tool: %v", err)
	}

	a := New(mock, WithTools(addTool))

	result, err := a.Run(context.Background(), "Calculate 2 + 2")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Output != "The answer is 4" {
		t.Errorf("output = %q", result.Output)
	}
	if !mock.sawTools {
		t.Error("tool definitions were not offered to the model")
	}

	if len(result.Invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(result.Invocations))
	}
	inv := result.Invocations[0]
	if inv.Name != "add" || inv.Result != "4" || inv.Err != "" {
		t.Errorf("unexpected invocation: %+v", inv)
	}
}

func TestAgent_Run_UnknownTool(t *testing.T) {
	mock := &mockProvider{
		responses: []llm.Message{
			{
				Role: llm.RoleAssistant,
				ToolCalls: []llm.ToolCall{
					{ID: "call_1", Type: "function", Function: llm.Function{Name: "missing", Arguments: `{}`}},
				},
			},
			{Role: llm.RoleAssistant, Content: "done"},
		},
	}

	a := New(mock)
	result, err := a.Run(context.Background(), "use a tool")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Invocations) != 1 || result.Invocations[0].Err != "tool not found" {
		t.Errorf("unexpected invocations: %+v", result.Invocations)
	}
}

func TestAgent_Run_MaxSteps(t *testing.T) {
	toolCall := llm.Message{
		Role: llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{
			{ID: "c", Type: "function", Function: llm.Function{Name: "add", Arguments: `{"a":1,"b":1}`}},
		},
	}
	mock := &mockProvider{responses: []llm.Message{toolCall, toolCall, toolCall}}

	addTool, _ := tools.New("add", "Adds", addFn)
	a := New(mock, WithTools(addTool))
	a.MaxSteps = 2

	if _, err := a.Run(context.Background(), "loop forever"); err == nil {
		t.Error("expected max steps error")
	}
}

func TestAgent_Run_PersistsTranscript(t *testing.T) {
	mock := &mockProvider{
		responses: []llm.Message{{Role: llm.RoleAssistant, Content: "hi there"}},
	}
	store := inmemory.New()

	a := New(mock,
		WithInstructions("Be brief."),
		WithStore(store, "session-1"),
	)

	if _, err := a.Run(context.Background(), "hello"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	history, err := store.History(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	// System, user, assistant.
	if len(history) != 3 {
		t.Fatalf("expected 3 persisted messages, got %d", len(history))
	}
	if history[0].Role != llm.RoleSystem || history[2].Content != "hi there" {
		t.Errorf("unexpected transcript: %+v", history)
	}

	// A second run resumes from the stored transcript.
	mock.responses = append(mock.responses, llm.Message{Role: llm.RoleAssistant, Content: "again"})
	b := New(mock, WithStore(store, "session-1"))
	if _, err := b.Run(context.Background(), "more"); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if len(mock.lastMessages) != 4 {
		t.Errorf("expected 4 messages sent on resume, got %d", len(mock.lastMessages))
	}
}

func TestAgent_RunStream(t *testing.T) {
	mock := &mockProvider{streamChunks: []string{"Hel", "lo"}}
	a := New(mock)

	stream, err := a.RunStream(context.Background(), "greet me")
	if err != nil {
		t.Fatalf("RunStream failed: %v", err)
	}

	var b strings.Builder
	for chunk := range stream {
		b.WriteString(chunk)
	}
	if b.String() != "Hello" {
		t.Errorf("streamed %q", b.String())
	}
}
