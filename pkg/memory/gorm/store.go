package gorm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barekit/praxis/pkg/llm"
	"github.com/barekit/praxis/pkg/memory/consts"
	"gorm.io/gorm"
)

// Store implements memory.Store on any GORM-supported database. The SQL
// backends (sqlite, postgres, mysql, mssql) all share this implementation
// and differ only in the driver they open.
type Store struct {
	db *gorm.DB
}

// MessageModel is the database schema for a transcript message.
type MessageModel struct {
	gorm.Model
	SessionID  string `gorm:"index"`
	Role       string
	Content    string
	ToolCalls  []byte `gorm:"type:json"`
	ToolCallID string
}

// TableName overrides the table name.
func (MessageModel) TableName() string {
	return consts.TableNameMessages
}

// New creates a Store and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&MessageModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append inserts a message row.
func (s *Store) Append(ctx context.Context, sessionID string, msg llm.Message) error {
	var toolCallsJSON []byte
	if len(msg.ToolCalls) > 0 {
		b, err := json.Marshal(msg.ToolCalls)
		if err != nil {
			return fmt.Errorf("failed to marshal tool calls: %w", err)
		}
		toolCallsJSON = b
	}

	model := MessageModel{
		SessionID:  sessionID,
		Role:       string(msg.Role),
		Content:    msg.Content,
		ToolCalls:  toolCallsJSON,
		ToolCallID: msg.ToolCallID,
	}

	return s.db.WithContext(ctx).Create(&model).Error
}

// History loads the session transcript in insertion order.
func (s *Store) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	var models []MessageModel
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}

	messages := make([]llm.Message, len(models))
	for i, model := range models {
		msg := llm.Message{
			Role:       llm.Role(model.Role),
			Content:    model.Content,
			ToolCallID: model.ToolCallID,
		}

		if len(model.ToolCalls) > 0 {
			var toolCalls []llm.ToolCall
			if err := json.Unmarshal(model.ToolCalls, &toolCalls); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tool calls for msg %d: %w", model.ID, err)
			}
			msg.ToolCalls = toolCalls
		}

		messages[i] = msg
	}

	return messages, nil
}

// Clear deletes the session transcript.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&MessageModel{}).Error
}
