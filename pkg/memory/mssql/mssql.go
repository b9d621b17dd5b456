package mssql

import (
	"fmt"

	gormstore "github.com/barekit/praxis/pkg/memory/gorm"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// New creates a SQL Server-backed transcript store.
func New(dsn string) (*gormstore.Store, error) {
	db, err := gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open mssql: %w", err)
	}
	return gormstore.New(db)
}
