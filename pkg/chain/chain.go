// Package chain composes prompts, providers, and parsers into runnable
// pipelines: a single prompt-to-text chain, a sequential chain that feeds
// one output into the next prompt, and a router that picks a branch by
// inspecting the input.
package chain

import (
	"context"
	"strings"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/prompt"
)

// Chain renders a prompt template and sends it to a provider as a single
// user message, returning the trimmed reply.
type Chain struct {
	Prompt   *prompt.Template
	Provider llm.Provider
	// Options are applied to every call; nil means provider defaults.
	Options *llm.ChatOptions
}

// New creates a Chain.
func New(tmpl *prompt.Template, provider llm.Provider) *Chain {
	return &Chain{Prompt: tmpl, Provider: provider}
}

// Run formats the template with vars and returns the model's reply.
func (c *Chain) Run(ctx context.Context, vars map[string]string) (string, error) {
	text, err := c.Prompt.Format(vars)
	if err != nil {
		return "", err
	}

	messages := []llm.Message{{Role: llm.RoleUser, Content: text}}
	response, err := c.Provider.Chat(ctx, messages, c.Options)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Content), nil
}

// Step is one stage of a Sequential chain. The stage's output is stored
// under OutputVar for later stages to consume.
type Step struct {
	Chain     *Chain
	OutputVar string
}

// Sequential runs chains in order, accumulating outputs into the variable
// map so each prompt can reference earlier results.
type Sequential struct {
	steps []Step
}

// NewSequential creates a Sequential chain from the given steps.
func NewSequential(steps ...Step) *Sequential {
	return &Sequential{steps: steps}
}

// Run executes the steps in order. It returns the full variable map, with
// all intermediate outputs, and the final step's output.
func (s *Sequential) Run(ctx context.Context, vars map[string]string) (map[string]string, string, error) {
	acc := make(map[string]string, len(vars)+len(s.steps))
	for k, v := range vars {
		acc[k] = v
	}

	var last string
	for _, step := range s.steps {
		// Each chain receives only the variables its template expects.
		stepVars := make(map[string]string)
		for _, name := range step.Chain.Prompt.Variables() {
			stepVars[name] = acc[name]
		}

		out, err := step.Chain.Run(ctx, stepVars)
		if err != nil {
			return nil, "", err
		}
		acc[step.OutputVar] = out
		last = out
	}

	return acc, last, nil
}
