package pgvector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barekit/praxis/pkg/knowledge"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements knowledge.VectorStore using Postgres with the pgvector
// extension.
type Store struct {
	db *gorm.DB
}

// DocumentModel is the database schema for a document. The dimension
// matches text-embedding-3-small output.
type DocumentModel struct {
	ID        string `gorm:"primaryKey"`
	Content   string
	Metadata  []byte          `gorm:"type:jsonb"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}

// TableName overrides the table name.
func (DocumentModel) TableName() string {
	return "documents"
}

// New connects, enables the vector extension, and migrates the schema.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("failed to enable pgvector extension: %w", err)
	}

	if err := db.AutoMigrate(&DocumentModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Upsert writes documents and vectors in one transaction.
func (s *Store) Upsert(ctx context.Context, vectors [][]float32, documents []knowledge.Document) error {
	if len(vectors) != len(documents) {
		return fmt.Errorf("number of vectors and documents must match")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, doc := range documents {
			metadataJSON := []byte("{}")
			if len(doc.Metadata) > 0 {
				b, err := json.Marshal(doc.Metadata)
				if err != nil {
					return fmt.Errorf("failed to marshal metadata for %s: %w", doc.ID, err)
				}
				metadataJSON = b
			}

			model := DocumentModel{
				ID:        doc.ID,
				Content:   doc.Content,
				Metadata:  metadataJSON,
				Embedding: pgvector.NewVector(vectors[i]),
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"content", "metadata", "embedding"}),
			}).Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// searchRow carries a document plus its similarity for one search hit.
type searchRow struct {
	ID       string
	Content  string
	Metadata []byte
	Score    float32
}

// Search orders by cosine distance (the <=> operator) ascending and
// reports 1 - distance as the similarity score.
func (s *Store) Search(ctx context.Context, query []float32, limit int) ([]knowledge.Document, error) {
	var rows []searchRow
	vec := pgvector.NewVector(query)

	err := s.db.WithContext(ctx).
		Model(&DocumentModel{}).
		Select("id, content, metadata, 1 - (embedding <=> ?) AS score", vec).
		Order(clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{vec}}).
		Limit(limit).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	docs := make([]knowledge.Document, len(rows))
	for i, row := range rows {
		doc := knowledge.Document{
			ID:      row.ID,
			Content: row.Content,
			Score:   row.Score,
		}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", row.ID, err)
			}
		}
		docs[i] = doc
	}

	return docs, nil
}
