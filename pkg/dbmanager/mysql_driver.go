package dbmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL Driver
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const mysqlTableListQuery = "SHOW TABLES;"

// MySQLDriver implements the DatabaseDriver interface for MySQL
type MySQLDriver struct{}

// NewMySQLDriver creates a new MySQL driver
func NewMySQLDriver() DatabaseDriver {
	return &MySQLDriver{}
}

// Connect establishes a connection to a MySQL database
func (d *MySQLDriver) Connect(ctx context.Context, uri string) (*Connection, error) {
	dsn, err := MySQLDSN(uri)
	if err != nil {
		return nil, err
	}

	// Open connection
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
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
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
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

// Disconnect closes a MySQL database connection
func (d *MySQLDriver) Disconnect(conn *Connection) error {
	return closeGormConnection(conn)
}

// Ping checks if the MySQL connection is alive
func (d *MySQLDriver) Ping(ctx context.Context, conn *Connection) error {
	return pingGormConnection(ctx, conn)
}

func (d *MySQLDriver) TableListQuery() string {
	return mysqlTableListQuery
}

func (d *MySQLDriver) NewSchemaFetcher(db DBExecutor) SchemaFetcher {
	return NewMySQLSchemaFetcher(db)
}

func closeGormConnection(conn *Connection) error {
	if conn == nil || conn.DB == nil {
		return nil
	}

	// Get the underlying SQL DB
	sqlDB, err := conn.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %v", err)
	}

	// Close the connection
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %v", err)
	}
	conn.Status = StatusDisconnected
	return nil
}

func pingGormConnection(ctx context.Context, conn *Connection) error {
	if conn == nil || conn.DB == nil {
		return fmt.Errorf("no active connection to ping")
	}

	sqlDB, err := conn.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %v", err)
	}

	return sqlDB.PingContext(ctx)
}
