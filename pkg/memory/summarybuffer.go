package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/barekit/praxis/pkg/llm"
)

// foldBatch is how many of the oldest pairs are folded into the summary
// when the recent window overflows.
const foldBatch = 2

// SummaryBuffer is the hybrid memory: the last MaxPairs exchanges verbatim,
// everything older folded into a running summary by a secondary model call.
type SummaryBuffer struct {
	mu       sync.Mutex
	provider llm.Provider
	maxPairs int
	summary  string
	recent   []Pair
}

// SummaryBufferStats describes the memory for inspection endpoints.
type SummaryBufferStats struct {
	Summary     string `json:"summary"`
	RecentPairs int    `json:"recent_pairs"`
	MaxPairs    int    `json:"max_pairs"`
	HasSummary  bool   `json:"has_summary"`
	Structure   string `json:"structure"`
}

// NewSummaryBuffer creates a hybrid memory that keeps maxPairs recent
// exchanges in full detail.
func NewSummaryBuffer(provider llm.Provider, maxPairs int) *SummaryBuffer {
	if maxPairs < 1 {
		maxPairs = 1
	}
	return &SummaryBuffer{provider: provider, maxPairs: maxPairs}
}

// AddPair records an exchange. When the recent window exceeds its bound,
// the oldest pairs are folded into the summary; the fold uses the provider
// and falls back to a truncated transcript fragment on failure.
func (s *SummaryBuffer) AddPair(ctx context.Context, user, assistant string) {
	s.mu.Lock()
	s.recent = append(s.recent, Pair{User: user, Assistant: assistant})
	if len(s.recent) <= s.maxPairs {
		s.mu.Unlock()
		return
	}

	n := foldBatch
	if n > len(s.recent) {
		n = len(s.recent)
	}
	toFold := make([]Pair, n)
	copy(toFold, s.recent[:n])
	s.recent = s.recent[n:]
	s.mu.Unlock()

	// The model call happens outside the lock; only the result merge is
	// guarded.
	text := summarize(ctx, s.provider, toFold)

	s.mu.Lock()
	if s.summary == "" {
		s.summary = text
	} else {
		s.summary = s.summary + "\n\n" + text
	}
	s.mu.Unlock()
}

// Messages renders the memory for prompt injection: the summary as an
// assistant context turn (when present) followed by the recent exchanges.
func (s *SummaryBuffer) Messages() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []llm.Message
	if s.summary != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleAssistant,
			Content: "Context from previous conversation: " + s.summary,
		})
	}
	return append(messages, pairsToMessages(s.recent)...)
}

// Stats reports the memory shape.
func (s *SummaryBuffer) Stats() SummaryBufferStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	structure := fmt.Sprintf("%d recent message pairs", len(s.recent))
	if s.summary != "" {
		structure = "Summary + " + structure
	}

	return SummaryBufferStats{
		Summary:     s.summary,
		RecentPairs: len(s.recent),
		MaxPairs:    s.maxPairs,
		HasSummary:  s.summary != "",
		Structure:   structure,
	}
}

// Raw exposes the underlying state for the debugging endpoint.
func (s *SummaryBuffer) Raw() (summary string, recent []Pair, maxPairs int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent = make([]Pair, len(s.recent))
	copy(recent, s.recent)
	return s.summary, recent, s.maxPairs
}

// Clear forgets both the summary and the recent window.
func (s *SummaryBuffer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = ""
	s.recent = nil
}
