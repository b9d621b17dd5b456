package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Provider adapts the openai-go client to llm.Provider. The same adapter
// covers api.openai.com, Azure OpenAI deployments, Gemini's OpenAI-compatible
// endpoint and local Ollama servers; only the request options differ.
type Provider struct {
	client *openai.Client
	model  string
}

// New creates a Provider against api.openai.com (or whatever the given
// request options point it at).
func New(opts ...option.RequestOption) *Provider {
	client := openai.NewClient(opts...)
	return &Provider{
		client: &client,
		model:  openai.ChatModelGPT4o,
	}
}

// NewAzure creates a Provider for an Azure OpenAI resource. The deployment
// name doubles as the model identifier on Azure.
func NewAzure(endpoint, apiVersion, apiKey, deployment string) *Provider {
	client := openai.NewClient(
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
	)
	return &Provider{
		client: &client,
		model:  deployment,
	}
}

// NewCompatible creates a Provider for any OpenAI-compatible endpoint, such
// as Gemini's compatibility layer or a local Ollama server.
func NewCompatible(baseURL, apiKey, model string) *Provider {
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)
	return &Provider{
		client: &client,
		model:  model,
	}
}

// SetModel sets the model to use.
func (p *Provider) SetModel(model string) {
	p.model = model
}

// Model returns the model identifier this provider targets.
func (p *Provider) Model() string {
	return p.model
}

// Chat sends the conversation to the model and returns its reply.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Message, error) {
	params, err := p.buildParams(messages, opts)
	if err != nil {
		return nil, err
	}

	completion, err := p.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	choice := completion.Choices[0]
	responseMsg := &llm.Message{
		Role:    llm.RoleAssistant,
		Content: choice.Message.Content,
		Usage: &llm.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}

	if len(choice.Message.ToolCalls) > 0 {
		responseMsg.ToolCalls = make([]llm.ToolCall, len(choice.Message.ToolCalls))
		for i, tc := range choice.Message.ToolCalls {
			responseMsg.ToolCalls[i] = llm.ToolCall{
				ID:   tc.ID,
				Type: string(tc.Type),
				Function: llm.Function{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			}
		}
	}

	return responseMsg, nil
}

// Stream sends the conversation to the model and returns a channel of
// response chunks. Tool calls are not consumed from streams; callers that
// need tools should use Chat.
func (p *Provider) Stream(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (<-chan string, error) {
	params, err := p.buildParams(messages, opts)
	if err != nil {
		return nil, err
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, *params)

	out := make(chan string)
	go func() {
		defer close(out)
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) > 0 {
				out <- chunk.Choices[0].Delta.Content
			}
		}
		if err := stream.Err(); err != nil {
			slog.Error("stream ended with error", "model", p.model, "error", err)
		}
	}()

	return out, nil
}

func (p *Provider) buildParams(messages []llm.Message, opts *llm.ChatOptions) (*openai.ChatCompletionNewParams, error) {
	openaiMessages, err := buildMessages(messages)
	if err != nil {
		return nil, err
	}

	params := &openai.ChatCompletionNewParams{
		Messages: openaiMessages,
		Model:    p.model,
	}
	if opts == nil {
		return params, nil
	}

	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}
	if opts.TopP != nil {
		params.TopP = openai.Float(*opts.TopP)
	}
	if opts.MaxTokens != nil {
		params.MaxTokens = openai.Int(*opts.MaxTokens)
	}
	if len(opts.Tools) > 0 {
		params.Tools = buildTools(opts.Tools)
	}

	return params, nil
}

func buildMessages(messages []llm.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case llm.RoleUser:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		case llm.RoleAssistant:
			assistantMsg := openai.AssistantMessage(msg.Content)
			if len(msg.ToolCalls) > 0 {
				toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
				for j, tc := range msg.ToolCalls {
					toolCalls[j] = openai.ChatCompletionMessageToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					}
				}
				if assistantMsg.OfAssistant != nil {
					assistantMsg.OfAssistant.ToolCalls = toolCalls
				}
			}
			openaiMessages[i] = assistantMsg
		case llm.RoleTool:
			openaiMessages[i] = openai.ToolMessage(msg.ToolCallID, msg.Content)
		default:
			return nil, fmt.Errorf("unknown role: %s", msg.Role)
		}
	}
	return openaiMessages, nil
}

func buildTools(tools []llm.ToolDefinition) []openai.ChatCompletionToolParam {
	openaiTools := make([]openai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		params, ok := t.Function.Parameters.(map[string]interface{})
		if !ok {
			b, _ := json.Marshal(t.Function.Parameters)
			_ = json.Unmarshal(b, &params)
		}

		openaiTools[i] = openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Function.Name,
				Description: openai.String(t.Function.Description),
				Parameters:  shared.FunctionParameters(params),
			},
		}
	}
	return openaiTools
}
