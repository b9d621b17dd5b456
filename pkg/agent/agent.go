// Package agent runs a think/act loop over an LLM provider: the model
// replies either with text (done) or with tool calls, which are executed
// and fed back until it settles on an answer.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/barekit/praxis/pkg/knowledge"
	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/memory"
	"github.com/barekit/praxis/pkg/tools"
)

// Agent drives the loop.
type Agent struct {
	Name         string
	Instructions string
	LLM          llm.Provider
	Tools        map[string]*tools.Tool
	History      []llm.Message
	MaxSteps     int
	Store        memory.Store
	SessionID    string
	Knowledge    *knowledge.Base
	Debug        bool
}

// ToolInvocation records one executed tool call for the caller.
type ToolInvocation struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
	Err       string `json:"error,omitempty"`
}

// RunResult is the outcome of a Run: the final text plus every tool call
// that happened along the way.
type RunResult struct {
	Output      string
	Invocations []ToolInvocation
}

// Option configures an Agent.
type Option func(*Agent)

// New creates an Agent.
func New(provider llm.Provider, opts ...Option) *Agent {
	a := &Agent{
		Name:     "Agent",
		LLM:      provider,
		Tools:    make(map[string]*tools.Tool),
		MaxSteps: 10,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithName sets the agent's name.
func WithName(name string) Option {
	return func(a *Agent) {
		a.Name = name
	}
}

// WithKnowledge sets the knowledge base used for retrieval before each run.
func WithKnowledge(kb *knowledge.Base) Option {
	return func(a *Agent) {
		a.Knowledge = kb
	}
}

// WithInstructions sets the agent's system instructions.
func WithInstructions(instructions string) Option {
	return func(a *Agent) {
		a.Instructions = instructions
	}
}

// WithTools adds tools to the agent.
func WithTools(ts ...*tools.Tool) Option {
	return func(a *Agent) {
		for _, t := range ts {
			a.Tools[t.Name] = t
		}
	}
}

// WithStore sets the transcript store and session ID.
func WithStore(store memory.Store, sessionID string) Option {
	return func(a *Agent) {
		a.Store = store
		a.SessionID = sessionID
	}
}

// WithDebug enables step logging.
func WithDebug(enable bool) Option {
	return func(a *Agent) {
		a.Debug = enable
	}
}

// Run executes the loop with the given input and returns the final answer
// along with the tool calls made on the way.
func (a *Agent) Run(ctx context.Context, input string) (*RunResult, error) {
	if a.Debug {
		slog.Info("agent run started", "input", input, "session_id", a.SessionID)
	}

	if err := a.prepareStep(ctx, input); err != nil {
		return nil, err
	}

	var toolDefs []llm.ToolDefinition
	for _, t := range a.Tools {
		toolDefs = append(toolDefs, t.Definition)
	}
	var opts *llm.ChatOptions
	if len(toolDefs) > 0 {
		opts = &llm.ChatOptions{Tools: toolDefs}
	}

	result := &RunResult{}
	for steps := 0; steps < a.MaxSteps; steps++ {
		if a.Debug {
			slog.Info("agent step", "step", steps+1)
		}

		response, err := a.LLM.Chat(ctx, a.History, opts)
		if err != nil {
			return nil, fmt.Errorf("LLM error: %w", err)
		}

		a.History = append(a.History, *response)
		if err := a.persist(ctx, *response); err != nil {
			return nil, fmt.Errorf("failed to save assistant message: %w", err)
		}

		// No tool calls means the model settled on an answer.
		if len(response.ToolCalls) == 0 {
			if a.Debug {
				slog.Info("agent run completed", "response", response.Content)
			}
			result.Output = response.Content
			return result, nil
		}

		for _, tc := range response.ToolCalls {
			if a.Debug {
				slog.Info("agent tool call", "tool", tc.Function.Name, "args", tc.Function.Arguments)
			}

			invocation := ToolInvocation{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}

			tool, ok := a.Tools[tc.Function.Name]
			if !ok {
				invocation.Err = "tool not found"
				invocation.Result = fmt.Sprintf("Error: Tool %s not found", tc.Function.Name)
			} else {
				output, err := tool.Call(ctx, tc.Function.Arguments)
				if err != nil {
					invocation.Err = err.Error()
					output = fmt.Sprintf("Error executing tool: %v", err)
					slog.Error("tool execution failed", "tool", tc.Function.Name, "error", err)
				}
				invocation.Result = output
			}
			result.Invocations = append(result.Invocations, invocation)

			resultMsg := llm.Message{
				Role:       llm.RoleTool,
				Content:    invocation.Result,
				ToolCallID: tc.ID,
			}
			a.History = append(a.History, resultMsg)
			if err := a.persist(ctx, resultMsg); err != nil {
				return nil, fmt.Errorf("failed to save tool output: %w", err)
			}
		}
	}

	return nil, fmt.Errorf("max steps reached")
}

// RunStream executes a single-turn streaming completion. Tools are not
// offered on the streaming path.
func (a *Agent) RunStream(ctx context.Context, input string) (<-chan string, error) {
	if a.Debug {
		slog.Info("agent stream started", "input", input, "session_id", a.SessionID)
	}

	if err := a.prepareStep(ctx, input); err != nil {
		return nil, err
	}

	stream, err := a.LLM.Stream(ctx, a.History, nil)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		var fullResponse string
		for chunk := range stream {
			fullResponse += chunk
			out <- chunk
		}

		assistantMsg := llm.Message{
			Role:    llm.RoleAssistant,
			Content: fullResponse,
		}
		a.History = append(a.History, assistantMsg)
		if err := a.persist(ctx, assistantMsg); err != nil {
			slog.Error("failed to save assistant message", "error", err)
		}
	}()

	return out, nil
}

// prepareStep loads history, retrieves knowledge context, and records the
// user turn.
func (a *Agent) prepareStep(ctx context.Context, input string) error {
	if a.Store != nil && a.SessionID != "" {
		history, err := a.Store.History(ctx, a.SessionID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		a.History = history
	}

	if len(a.History) == 0 && a.Instructions != "" {
		sysMsg := llm.Message{
			Role:    llm.RoleSystem,
			Content: a.Instructions,
		}
		a.History = append(a.History, sysMsg)
		if err := a.persist(ctx, sysMsg); err != nil {
			return fmt.Errorf("failed to save system message: %w", err)
		}
	}

	fullInput := input
	if a.Knowledge != nil {
		docs, err := a.Knowledge.Retrieve(ctx, input, 3)
		if err != nil {
			return fmt.Errorf("failed to retrieve documents: %w", err)
		}
		if len(docs) > 0 {
			contextInfo := "\nRelevant Context:\n"
			for _, doc := range docs {
				contextInfo += fmt.Sprintf("- %s\n", doc.Content)
			}
			fullInput += contextInfo
		}
	}

	userMsg := llm.Message{
		Role:    llm.RoleUser,
		Content: fullInput,
	}
	a.History = append(a.History, userMsg)
	if err := a.persist(ctx, userMsg); err != nil {
		return fmt.Errorf("failed to save user message: %w", err)
	}

	return nil
}

func (a *Agent) persist(ctx context.Context, msg llm.Message) error {
	if a.Store == nil || a.SessionID == "" {
		return nil
	}
	return a.Store.Append(ctx, a.SessionID, msg)
}
