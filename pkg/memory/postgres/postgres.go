package postgres

import (
	"fmt"

	gormstore "github.com/barekit/praxis/pkg/memory/gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New creates a Postgres-backed transcript store.
func New(dsn string) (*gormstore.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return gormstore.New(db)
}
