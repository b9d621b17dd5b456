// Package memory holds conversation state for the exercises: durable
// transcript stores selected by a factory, and in-process conversational
// memories (buffer, window, summary, and the hybrid summary buffer) that
// shape history before it is injected into a prompt.
package memory

import (
	"context"

	"github.com/barekit/praxis/pkg/llm"
)

// Store persists a chat transcript per session.
type Store interface {
	// Append adds a message to the session transcript.
	Append(ctx context.Context, sessionID string, msg llm.Message) error
	// History returns the session transcript in order.
	History(ctx context.Context, sessionID string) ([]llm.Message, error)
	// Clear removes the session transcript.
	Clear(ctx context.Context, sessionID string) error
}
