package dbmanager

import (
	"context"
	"log"

	"gorm.io/gorm"
)

// DBExecutor interface defines the read operations schema fetchers need
type DBExecutor interface {
	Query(ctx context.Context, sql string, dest interface{}, values ...interface{}) error
	QueryRows(ctx context.Context, sql string, values ...interface{}) ([]string, [][]any, error)
}

// GormWrapper implements DBExecutor on top of a gorm handle
type GormWrapper struct {
	db *gorm.DB
}

func NewGormWrapper(db *gorm.DB) *GormWrapper {
	return &GormWrapper{db: db}
}

// Query scans the result into dest using gorm's column mapping
func (w *GormWrapper) Query(ctx context.Context, sql string, dest interface{}, values ...interface{}) error {
	return w.db.WithContext(ctx).Raw(sql, values...).Scan(dest).Error
}

// QueryRows returns columns and normalized rows in result order
func (w *GormWrapper) QueryRows(ctx context.Context, sql string, values ...interface{}) ([]string, [][]any, error) {
	rows, err := w.db.WithContext(ctx).Raw(sql, values...).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("GormWrapper -> QueryRows -> Error closing rows: %v", err)
		}
	}()

	return scanRows(rows)
}
