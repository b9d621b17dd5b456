package qdrant

import (
	"context"
	"fmt"

	"github.com/barekit/praxis/pkg/knowledge"
	"github.com/qdrant/go-client/qdrant"
)

// Store implements knowledge.VectorStore using Qdrant.
type Store struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

// New creates a Store and ensures the collection exists with cosine
// distance.
func New(host string, port int, collectionName string, vectorSize uint64) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	store := &Store{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
	}

	if err := store.initCollection(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) initCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     s.vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
	}
	return nil
}

// Upsert writes documents and their vectors as Qdrant points. Document
// content rides along in the payload under "content".
func (s *Store) Upsert(ctx context.Context, vectors [][]float32, documents []knowledge.Document) error {
	if len(vectors) != len(documents) {
		return fmt.Errorf("number of vectors and documents must match")
	}

	points := make([]*qdrant.PointStruct, len(vectors))
	for i, doc := range documents {
		payload := make(map[string]*qdrant.Value)
		payload["content"] = qdrant.NewValueString(doc.Content)
		for k, v := range doc.Metadata {
			if strVal, ok := v.(string); ok {
				payload[k] = qdrant.NewValueString(strVal)
			}
		}

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(doc.ID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: payload,
		}
	}

	wait := true
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         points,
		Wait:           &wait,
	})
	return err
}

// Search queries the collection by vector similarity.
func (s *Store) Search(ctx context.Context, query []float32, limit int) ([]knowledge.Document, error) {
	limit64 := uint64(limit)
	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit64,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	docs := make([]knowledge.Document, len(res))
	for i, hit := range res {
		content := ""
		if c, ok := hit.Payload["content"]; ok {
			content = c.GetStringValue()
		}

		metadata := make(map[string]interface{})
		for k, v := range hit.Payload {
			if k != "content" {
				metadata[k] = v.GetStringValue()
			}
		}

		docs[i] = knowledge.Document{
			ID:       hit.Id.GetUuid(),
			Content:  content,
			Metadata: metadata,
			Score:    hit.Score,
		}
	}

	return docs, nil
}
