package dbmanager

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const mysqlColumnsQuery = `
        SELECT c.table_name AS table_name,
               c.column_name AS column_name,
               c.column_type AS data_type,
               c.is_nullable AS is_nullable,
               c.column_default AS column_default
        FROM information_schema.columns c
        JOIN information_schema.tables t
          ON t.table_schema = c.table_schema AND t.table_name = c.table_name
        WHERE c.table_schema = DATABASE()
        AND t.table_type = 'BASE TABLE'
        ORDER BY c.table_name, c.ordinal_position;
    `

// MySQLSchemaFetcher implements schema fetching for MySQL
type MySQLSchemaFetcher struct {
	db DBExecutor
}

// NewMySQLSchemaFetcher creates a new MySQL schema fetcher
func NewMySQLSchemaFetcher(db DBExecutor) SchemaFetcher {
	return &MySQLSchemaFetcher{db: db}
}

// FetchSchema reads every base table of the current database. When
// information_schema is not readable it falls back to SHOW TABLES and
// DESCRIBE.
func (f *MySQLSchemaFetcher) FetchSchema(ctx context.Context) (*SchemaInfo, error) {
	if err := ctx.Err(); err != nil {
		log.Printf("MySQLSchemaFetcher -> FetchSchema -> Context cancelled: %v", err)
		return nil, err
	}

	var columns []columnRow
	err := f.db.Query(ctx, mysqlColumnsQuery, &columns)
	if err == nil {
		log.Printf("MySQLSchemaFetcher -> FetchSchema -> Found %d columns", len(columns))
		return buildSchema(columns), nil
	}

	log.Printf("MySQLSchemaFetcher -> FetchSchema -> information_schema error: %v", err)
	log.Printf("MySQLSchemaFetcher -> FetchSchema -> Trying alternative SHOW TABLES approach")
	return f.fetchSchemaWithDescribe(ctx)
}

func (f *MySQLSchemaFetcher) fetchSchemaWithDescribe(ctx context.Context) (*SchemaInfo, error) {
	_, tableRows, err := f.db.QueryRows(ctx, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tables: %v", err)
	}

	var columns []columnRow
	for _, tableRow := range tableRows {
		if len(tableRow) == 0 || tableRow[0] == nil {
			continue
		}
		table := fmt.Sprint(tableRow[0])

		names, describeRows, err := f.db.QueryRows(ctx, fmt.Sprintf("DESCRIBE %s", quoteMySQLIdentifier(table)))
		if err != nil {
			log.Printf("MySQLSchemaFetcher -> fetchSchemaWithDescribe -> DESCRIBE error for table %s: %v", table, err)
			continue
		}

		index := columnIndex(names)
		for _, row := range describeRows {
			col := columnRow{
				TableName:  table,
				ColumnName: stringAt(row, index, "Field"),
				DataType:   stringAt(row, index, "Type"),
				IsNullable: stringAt(row, index, "Null"),
			}
			if def := stringAt(row, index, "Default"); def != "" {
				col.ColumnDefault = &def
			}
			columns = append(columns, col)
		}
	}

	return buildSchema(columns), nil
}

// FetchExampleRecords retrieves sample records from a table
func (f *MySQLSchemaFetcher) FetchExampleRecords(ctx context.Context, table string, limit int) ([]string, [][]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteMySQLIdentifier(table), limit)
	columns, rows, err := f.db.QueryRows(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch example records for table %s: %v", table, err)
	}
	return columns, rows, nil
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func columnIndex(names []string) map[string]int {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return index
}

func stringAt(row []any, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}
