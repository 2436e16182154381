package dbmanager

import (
	"context"
	"dbconsultor-ai/internal/constants"
	"fmt"
	"log"
	"sync"
	"time"
)

// ManagerConfig carries the connection URIs, keyed by backend, and the number
// of sample rows to include in schema descriptions.
type ManagerConfig struct {
	URIs       map[string]string
	SampleRows int
}

// Manager owns one lazily opened connection pool per backend.
type Manager struct {
	config      ManagerConfig
	connections map[string]*Connection // backend -> connection
	drivers     map[string]DatabaseDriver
	mu          sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager(config ManagerConfig) *Manager {
	if config.URIs == nil {
		config.URIs = map[string]string{}
	}
	return &Manager{
		config:      config,
		connections: make(map[string]*Connection),
		drivers:     make(map[string]DatabaseDriver),
	}
}

// RegisterDriver registers a driver for a backend
func (m *Manager) RegisterDriver(backend string, driver DatabaseDriver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[backend] = driver
}

// IsConfigured reports whether the backend has a URI
func (m *Manager) IsConfigured(backend string) bool {
	return m.config.URIs[backend] != ""
}

// IsConnected reports whether a pool for the backend is already open
func (m *Manager) IsConnected(backend string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conn, ok := m.connections[backend]
	return ok && conn.Status == StatusConnected
}

// idlePingAfter is how long a pooled connection may sit unused before it is
// pinged again on reuse.
const idlePingAfter = 30 * time.Second

// GetConnection returns the pooled connection for a backend, opening it on
// first use. A failed open is not remembered, so the next call tries again.
// A pool that fails its ping is marked StatusError, dropped and reopened.
func (m *Manager) GetConnection(ctx context.Context, backend string) (*Connection, error) {
	if !constants.IsSupportedDatabaseType(backend) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
	driver, err := m.driver(backend)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	conn, exists := m.connections[backend]
	var idle time.Duration
	if exists {
		idle = time.Since(conn.LastUsed)
	}
	m.mu.RUnlock()
	if exists {
		if idle < idlePingAfter {
			return conn, nil
		}
		err := driver.Ping(ctx, conn)
		if err == nil {
			m.touch(backend)
			return conn, nil
		}
		log.Printf("DBManager -> GetConnection -> Ping to %s failed, reopening: %v", backend, err)
		m.discard(backend, conn, driver)
	}

	uri := m.config.URIs[backend]
	if uri == "" {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotConfigured, backend)
	}

	// dialing happens outside the lock so readers are not held up by a slow
	// or unreachable server
	log.Printf("DBManager -> GetConnection -> Opening %s connection", backend)
	opened, err := driver.Connect(ctx, uri)
	if err != nil {
		log.Printf("DBManager -> GetConnection -> Failed to connect to %s: %v", backend, err)
		return nil, &ConnectionError{Backend: backend, Err: err}
	}
	opened.Backend = backend

	m.mu.Lock()
	if current, ok := m.connections[backend]; ok {
		m.mu.Unlock()
		// another request connected first, keep its pool
		if err := driver.Disconnect(opened); err != nil {
			log.Printf("DBManager -> GetConnection -> Error closing duplicate %s pool: %v", backend, err)
		}
		return current, nil
	}
	m.connections[backend] = opened
	m.mu.Unlock()

	log.Printf("DBManager -> GetConnection -> Connected to %s", backend)
	return opened, nil
}

// discard removes a broken pool, if it is still the stored one, and closes it
func (m *Manager) discard(backend string, conn *Connection, driver DatabaseDriver) {
	m.mu.Lock()
	if m.connections[backend] == conn {
		delete(m.connections, backend)
	}
	m.mu.Unlock()

	if err := driver.Disconnect(conn); err != nil {
		log.Printf("DBManager -> discard -> Error closing %s: %v", backend, err)
	}
	m.mu.Lock()
	conn.Status = StatusError
	m.mu.Unlock()
}

// ListTables returns the table names of the backend using the dialect's
// listing statement.
func (m *Manager) ListTables(ctx context.Context, backend string) ([]string, error) {
	conn, err := m.GetConnection(ctx, backend)
	if err != nil {
		return nil, err
	}
	driver, err := m.driver(backend)
	if err != nil {
		return nil, err
	}

	_, rows, err := NewGormWrapper(conn.DB).QueryRows(ctx, driver.TableListQuery())
	if err != nil {
		log.Printf("DBManager -> ListTables -> Error listing %s tables: %v", backend, err)
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	m.touch(backend)

	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == nil {
			continue
		}
		tables = append(tables, fmt.Sprint(row[0]))
	}
	return tables, nil
}

// DescribeSchema fetches the live schema, with sample rows, and renders it
// as text for the model. Nothing is cached between calls.
func (m *Manager) DescribeSchema(ctx context.Context, backend string) (string, error) {
	conn, err := m.GetConnection(ctx, backend)
	if err != nil {
		return "", err
	}
	driver, err := m.driver(backend)
	if err != nil {
		return "", err
	}

	fetcher := driver.NewSchemaFetcher(NewGormWrapper(conn.DB))
	schema, err := fetcher.FetchSchema(ctx)
	if err != nil {
		log.Printf("DBManager -> DescribeSchema -> Error fetching %s schema: %v", backend, err)
		return "", fmt.Errorf("failed to fetch schema: %w", err)
	}

	if m.config.SampleRows > 0 {
		attachExampleRecords(ctx, fetcher, schema, m.config.SampleRows)
	}
	m.touch(backend)

	return FormatSchemaForLLM(schema, m.config.SampleRows), nil
}

// Close disconnects every open pool
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for backend, conn := range m.connections {
		driver, ok := m.drivers[backend]
		if !ok {
			continue
		}
		if err := driver.Disconnect(conn); err != nil {
			log.Printf("DBManager -> Close -> Error closing %s: %v", backend, err)
			if firstErr == nil {
				firstErr = err
			}
		}
		conn.Status = StatusDisconnected
		delete(m.connections, backend)
	}
	return firstErr
}

func (m *Manager) driver(backend string) (DatabaseDriver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
	return driver, nil
}

func (m *Manager) touch(backend string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[backend]; ok {
		conn.LastUsed = time.Now()
	}
}
