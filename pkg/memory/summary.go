package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/barekit/praxis/pkg/llm"
)

const summaryPromptTemplate = `Please provide a concise summary of this conversation:

%s

Summary:`

// summarizeFallbackLimit bounds the raw-text fallback used when the
// summarizing model call fails.
const summarizeFallbackLimit = 200

// Summary maintains a running summary of the whole conversation instead of
// the raw turns. Every exchange is folded into the summary with a secondary
// model call.
type Summary struct {
	mu       sync.Mutex
	provider llm.Provider
	summary  string
}

// NewSummary creates a Summary memory backed by the given provider.
func NewSummary(provider llm.Provider) *Summary {
	return &Summary{provider: provider}
}

// AddPair folds the exchange into the running summary. When the summarizing
// call fails, a truncated transcript fragment is appended instead so the
// memory never loses the turn entirely.
func (s *Summary) AddPair(ctx context.Context, user, assistant string) {
	text := summarize(ctx, s.provider, []Pair{{User: user, Assistant: assistant}})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == "" {
		s.summary = text
		return
	}
	s.summary = s.summary + "\n\n" + text
}

// Summary returns the current running summary.
func (s *Summary) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Messages renders the summary as a single assistant context turn, or
// nothing when the conversation has not started.
func (s *Summary) Messages() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == "" {
		return nil
	}
	return []llm.Message{{
		Role:    llm.RoleAssistant,
		Content: "Context from previous conversation: " + s.summary,
	}}
}

// Clear forgets the summary.
func (s *Summary) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = ""
}

// summarize turns message pairs into a summary line via the provider, with
// a truncated-transcript fallback when the call fails.
func summarize(ctx context.Context, provider llm.Provider, pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n\n", p.User, p.Assistant)
	}
	transcript := b.String()

	prompt := fmt.Sprintf(summaryPromptTemplate, transcript)
	response, err := provider.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, nil)
	if err != nil || strings.TrimSpace(response.Content) == "" {
		fragment := transcript
		if len(fragment) > summarizeFallbackLimit {
			fragment = truncateRunes(fragment, summarizeFallbackLimit) + "..."
		}
		return "Previous conversation included discussion about: " + fragment
	}
	return "Previous conversation summary: " + strings.TrimSpace(response.Content)
}

// truncateRunes cuts s to at most limit bytes without splitting a UTF-8
// sequence.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
