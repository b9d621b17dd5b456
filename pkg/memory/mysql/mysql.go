package mysql

import (
	"fmt"

	gormstore "github.com/barekit/praxis/pkg/memory/gorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// New creates a MySQL-backed transcript store.
func New(dsn string) (*gormstore.Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	return gormstore.New(db)
}
