package dbmanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ConnectionStatus represents the current state of a database connection
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "db-connected"
	StatusDisconnected ConnectionStatus = "db-disconnected"
	StatusError        ConnectionStatus = "db-error"
)

var (
	// ErrUnsupportedBackend is returned for any backend name without a driver.
	ErrUnsupportedBackend = errors.New("unsupported database backend")
	// ErrBackendNotConfigured is returned when the backend has no URI.
	ErrBackendNotConfigured = errors.New("database URI not configured")
)

// ConnectionError wraps a failure to open or ping a backend.
type ConnectionError struct {
	Backend string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Backend, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Connection represents an open, pooled database handle for one backend
type Connection struct {
	DB       *gorm.DB
	Backend  string
	Status   ConnectionStatus
	OpenedAt time.Time
	LastUsed time.Time
}

// QueryExecutionResult represents the result of a query execution
type QueryExecutionResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	// ResultText is the literal list of tuples handed to the narrator.
	ResultText    string `json:"result_text"`
	ExecutionTime int    `json:"execution_time"`
}

// DatabaseDriver opens connections and knows the dialect specific queries
// for one backend.
type DatabaseDriver interface {
	Connect(ctx context.Context, uri string) (*Connection, error)
	Disconnect(conn *Connection) error
	Ping(ctx context.Context, conn *Connection) error
	TableListQuery() string
	NewSchemaFetcher(db DBExecutor) SchemaFetcher
}

// SchemaFetcher reads table structure and sample data from a live database
type SchemaFetcher interface {
	FetchSchema(ctx context.Context) (*SchemaInfo, error)
	FetchExampleRecords(ctx context.Context, table string, limit int) ([]string, [][]any, error)
}
