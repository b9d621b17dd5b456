package sqlite

import (
	"fmt"

	gormstore "github.com/barekit/praxis/pkg/memory/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New creates a SQLite-backed transcript store.
func New(dsn string) (*gormstore.Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return gormstore.New(db)
}
