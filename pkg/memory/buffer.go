package memory

import (
	"sync"

	"github.com/barekit/praxis/pkg/llm"
)

// Pair is one exchange: what the user said and what the model answered.
type Pair struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Buffer keeps the entire conversation in order, the simplest form of
// conversational memory. It lives for the process lifetime.
type Buffer struct {
	mu    sync.Mutex
	pairs []Pair
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// AddPair records one exchange.
func (b *Buffer) AddPair(user, assistant string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pairs = append(b.pairs, Pair{User: user, Assistant: assistant})
}

// Messages renders the full history as alternating user/assistant turns.
func (b *Buffer) Messages() []llm.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return pairsToMessages(b.pairs)
}

// Pairs returns a copy of the recorded exchanges.
func (b *Buffer) Pairs() []Pair {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Pair, len(b.pairs))
	copy(out, b.pairs)
	return out
}

// Clear forgets everything.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pairs = nil
}

// Window keeps only the last Size exchanges; older turns simply fall off.
type Window struct {
	mu    sync.Mutex
	size  int
	pairs []Pair
}

// NewWindow creates a Window that retains the last size exchanges.
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{size: size}
}

// AddPair records one exchange, evicting the oldest beyond the window.
func (w *Window) AddPair(user, assistant string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pairs = append(w.pairs, Pair{User: user, Assistant: assistant})
	if len(w.pairs) > w.size {
		w.pairs = w.pairs[len(w.pairs)-w.size:]
	}
}

// Messages renders the retained history.
func (w *Window) Messages() []llm.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return pairsToMessages(w.pairs)
}

// Clear forgets everything.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pairs = nil
}

func pairsToMessages(pairs []Pair) []llm.Message {
	messages := make([]llm.Message, 0, len(pairs)*2)
	for _, p := range pairs {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: p.User},
			llm.Message{Role: llm.RoleAssistant, Content: p.Assistant},
		)
	}
	return messages
}
