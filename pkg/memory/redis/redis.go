package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/redis/go-redis/v9"
)

// Store implements memory.Store on Redis. Each session transcript is a
// JSON list under "chat:{sessionID}".
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Append pushes the message onto the session list.
func (s *Store) Append(ctx context.Context, sessionID string, msg llm.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return s.client.RPush(ctx, key(sessionID), b).Err()
}

// History loads the full session list.
func (s *Store) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	result, err := s.client.LRange(ctx, key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, len(result))
	for i, item := range result {
		var msg llm.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message at index %d: %w", i, err)
		}
		messages[i] = msg
	}

	return messages, nil
}

// Clear deletes the session list.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}

func key(sessionID string) string {
	return fmt.Sprintf("chat:%s", sessionID)
}
