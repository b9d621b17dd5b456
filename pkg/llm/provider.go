package llm

import "context"

// Role represents the role of the message sender (system, user, assistant, tool).
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Name is optional, used for tool calls to specify which tool is being called or responding.
	Name string `json:"name,omitempty"`
	// ToolCalls is a list of tool calls made by the assistant.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// ToolCallID is the ID of the tool call this message is a response to.
	ToolCallID string `json:"tool_call_id,omitempty"`
	// Usage carries token accounting for assistant replies when the provider reports it.
	Usage *Usage `json:"usage,omitempty"`
}

// Usage reports token consumption for a single completion.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ToolCall represents a request to call a tool.
type ToolCall struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function represents the function details in a tool call.
type Function struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatOptions tunes a single Chat or Stream call. A nil options value uses
// the provider's defaults for everything.
type ChatOptions struct {
	// Tools the model may call during this completion.
	Tools []ToolDefinition
	// Sampling overrides. Nil fields fall back to the provider defaults.
	Temperature *float64
	TopP        *float64
	MaxTokens   *int64
}

// Provider defines the interface for an LLM provider.
type Provider interface {
	// Chat sends a list of messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Message, error)
	// Stream sends a list of messages to the LLM and returns a channel of response chunks.
	Stream(ctx context.Context, messages []Message, opts *ChatOptions) (<-chan string, error)
}

// ToolDefinition represents the schema of a tool that can be passed to the LLM.
type ToolDefinition struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction describes the function signature for the LLM.
type ToolFunction struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  interface{} `json:"parameters"`
}
