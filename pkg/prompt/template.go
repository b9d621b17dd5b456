// Package prompt provides small text templates for building model inputs.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/barekit/praxis/pkg/llm"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Template is a prompt with {name} placeholders.
type Template struct {
	text string
	vars []string
}

// New creates a Template and records the placeholder names it expects.
func New(text string) *Template {
	matches := placeholderRe.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var vars []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return &Template{text: text, vars: vars}
}

// Variables returns the placeholder names in order of first appearance.
func (t *Template) Variables() []string {
	out := make([]string, len(t.vars))
	copy(out, t.vars)
	return out
}

// Format substitutes the given values into the template. Every placeholder
// must be supplied; unknown values are rejected to catch typos early.
func (t *Template) Format(values map[string]string) (string, error) {
	for _, name := range t.vars {
		if _, ok := values[name]; !ok {
			return "", fmt.Errorf("missing template variable %q", name)
		}
	}
	for name := range values {
		if !contains(t.vars, name) {
			return "", fmt.Errorf("unknown template variable %q", name)
		}
	}

	out := placeholderRe.ReplaceAllStringFunc(t.text, func(m string) string {
		name := strings.Trim(m, "{}")
		return values[name]
	})
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ChatTemplate renders a system instruction, an injected history, and the
// current user input into a message list.
type ChatTemplate struct {
	System string
}

// NewChat creates a ChatTemplate with the given system instruction.
func NewChat(system string) *ChatTemplate {
	return &ChatTemplate{System: system}
}

// Render builds the message list: system, then history, then the user turn.
func (t *ChatTemplate) Render(history []llm.Message, input string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	if t.System != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: t.System})
	}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input})
	return messages
}
