package inmemory

import (
	"context"
	"sync"

	"github.com/barekit/praxis/pkg/llm"
)

// InMemory implements memory.Store with a process-lifetime map. Transcripts
// survive until the process exits or Clear is called.
type InMemory struct {
	mu       sync.RWMutex
	messages map[string][]llm.Message
}

// New creates a new InMemory store.
func New() *InMemory {
	return &InMemory{
		messages: make(map[string][]llm.Message),
	}
}

// Append adds a message to the session transcript.
func (m *InMemory) Append(ctx context.Context, sessionID string, msg llm.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages[sessionID] = append(m.messages[sessionID], msg)
	return nil
}

// History returns a copy of the session transcript so callers cannot race
// against later appends.
func (m *InMemory) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.messages[sessionID]
	result := make([]llm.Message, len(msgs))
	copy(result, msgs)

	return result, nil
}

// Clear removes the session transcript.
func (m *InMemory) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.messages, sessionID)
	return nil
}
