package neo4j

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/memory/consts"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Store implements memory.Store on Neo4j: one Session node per session
// linked to Message nodes via HAS_MESSAGE.
type Store struct {
	driver neo4j.DriverWithContext
	dbName string
}

// New creates a Neo4j-backed store and verifies connectivity.
func New(uri, username, password, dbName string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	return &Store{
		driver: driver,
		dbName: dbName,
	}, nil
}

// Append creates the Session node if needed and links a new Message node.
func (s *Store) Append(ctx context.Context, sessionID string, msg llm.Message) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.dbName})
	defer session.Close(ctx)

	var toolCallsJSON string
	if len(msg.ToolCalls) > 0 {
		b, err := json.Marshal(msg.ToolCalls)
		if err != nil {
			return fmt.Errorf("failed to marshal tool calls: %w", err)
		}
		toolCallsJSON = string(b)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
		MERGE (s:%s {id: $sessionID})
		CREATE (m:%s {
			%s: $role,
			%s: $content,
			%s: $toolCalls,
			%s: $toolCallID,
			%s: datetime()
		})
		CREATE (s)-[:%s]->(m)
		RETURN m
		`, consts.LabelSession, consts.LabelMessage,
			consts.ColRole, consts.ColContent, consts.ColToolCalls, consts.ColToolCallID, consts.ColCreatedAt,
			consts.RelHasMessage)

		params := map[string]any{
			"sessionID":  sessionID,
			"role":       string(msg.Role),
			"content":    msg.Content,
			"toolCalls":  toolCallsJSON,
			"toolCallID": msg.ToolCallID,
		}
		_, err := tx.Run(ctx, query, params)
		return nil, err
	})

	return err
}

// History loads the session's messages in creation order.
func (s *Store) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.dbName})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
		MATCH (s:%s {id: $sessionID})-[:%s]->(m:%s)
		RETURN m.%s, m.%s, m.%s, m.%s
		ORDER BY m.%s ASC
		`, consts.LabelSession, consts.RelHasMessage, consts.LabelMessage,
			consts.ColRole, consts.ColContent, consts.ColToolCalls, consts.ColToolCallID,
			consts.ColCreatedAt)

		res, err := tx.Run(ctx, query, map[string]any{"sessionID": sessionID})
		if err != nil {
			return nil, err
		}

		var messages []llm.Message
		for res.Next(ctx) {
			record := res.Record()

			role, _ := record.Get("m." + consts.ColRole)
			content, _ := record.Get("m." + consts.ColContent)
			toolCallsStr, _ := record.Get("m." + consts.ColToolCalls)
			toolCallID, _ := record.Get("m." + consts.ColToolCallID)

			msg := llm.Message{
				Role:       llm.Role(role.(string)),
				Content:    content.(string),
				ToolCallID: toolCallID.(string),
			}

			if toolCallsStr != nil && toolCallsStr.(string) != "" {
				var toolCalls []llm.ToolCall
				if err := json.Unmarshal([]byte(toolCallsStr.(string)), &toolCalls); err != nil {
					return nil, err
				}
				msg.ToolCalls = toolCalls
			}

			messages = append(messages, msg)
		}

		return messages, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]llm.Message), nil
}

// Clear detaches and deletes the session's message nodes and the session
// node itself.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.dbName})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
		MATCH (s:%s {id: $sessionID})
		OPTIONAL MATCH (s)-[:%s]->(m:%s)
		DETACH DELETE s, m
		`, consts.LabelSession, consts.RelHasMessage, consts.LabelMessage)

		_, err := tx.Run(ctx, query, map[string]any{"sessionID": sessionID})
		return nil, err
	})
	return err
}

// Close shuts down the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
