package dbmanager

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const postgresColumnsQuery = `
        SELECT c.table_name,
               c.column_name,
               c.data_type,
               c.is_nullable,
               c.column_default
        FROM information_schema.columns c
        JOIN information_schema.tables t
          ON t.table_schema = c.table_schema AND t.table_name = c.table_name
        WHERE c.table_schema = current_schema()
        AND t.table_type = 'BASE TABLE'
        ORDER BY c.table_name, c.ordinal_position;
    `

type PostgresSchemaFetcher struct {
	db DBExecutor
}

func (f *PostgresSchemaFetcher) FetchSchema(ctx context.Context) (*SchemaInfo, error) {
	if err := ctx.Err(); err != nil {
		log.Printf("PostgresSchemaFetcher -> FetchSchema -> Context cancelled: %v", err)
		return nil, err
	}

	var columns []columnRow
	if err := f.db.Query(ctx, postgresColumnsQuery, &columns); err != nil {
		return nil, fmt.Errorf("failed to fetch columns: %v", err)
	}

	log.Printf("PostgresSchemaFetcher -> FetchSchema -> Found %d columns", len(columns))
	return buildSchema(columns), nil
}

func (f *PostgresSchemaFetcher) FetchExampleRecords(ctx context.Context, table string, limit int) ([]string, [][]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quotePostgresIdentifier(table), limit)
	columns, rows, err := f.db.QueryRows(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch example records for table %s: %v", table, err)
	}
	return columns, rows, nil
}

func quotePostgresIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
