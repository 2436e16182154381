package dbmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL Driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresTableListQuery = "SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname != 'pg_catalog' AND schemaname != 'information_schema';"

type PostgresDriver struct{}

func NewPostgresDriver() DatabaseDriver {
	return &PostgresDriver{}
}

func (d *PostgresDriver) Connect(ctx context.Context, uri string) (*Connection, error) {
	dsn, err := PostgresDSN(uri)
	if err != nil {
		return nil, err
	}

	// Open connection
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection: %v", err)
	}

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	// Create GORM DB
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create GORM connection: %v", err)
	}

	now := time.Now()
	return &Connection{
		DB:       gormDB,
		Status:   StatusConnected,
		OpenedAt: now,
		LastUsed: now,
	}, nil
}

func (d *PostgresDriver) Disconnect(conn *Connection) error {
	return closeGormConnection(conn)
}

func (d *PostgresDriver) Ping(ctx context.Context, conn *Connection) error {
	return pingGormConnection(ctx, conn)
}

func (d *PostgresDriver) TableListQuery() string {
	return postgresTableListQuery
}

func (d *PostgresDriver) NewSchemaFetcher(db DBExecutor) SchemaFetcher {
	return &PostgresSchemaFetcher{db: db}
}
