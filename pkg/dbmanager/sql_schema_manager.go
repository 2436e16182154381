package dbmanager

import (
	"context"
	"dbconsultor-ai/pkg/rowcodec"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// maxSampleValueLength truncates long sample values in the schema text
const maxSampleValueLength = 100

// SchemaInfo represents database schema information
type SchemaInfo struct {
	Tables    map[string]TableSchema `json:"tables"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type TableSchema struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`

	SampleColumns []string `json:"sample_columns,omitempty"`
	SampleRows    [][]any  `json:"sample_rows,omitempty"`
}

type ColumnInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsNullable   bool   `json:"is_nullable"`
	DefaultValue string `json:"default_value,omitempty"`
}

// columnRow is one row of an information_schema.columns listing
type columnRow struct {
	TableName     string  `gorm:"column:table_name"`
	ColumnName    string  `gorm:"column:column_name"`
	DataType      string  `gorm:"column:data_type"`
	IsNullable    string  `gorm:"column:is_nullable"`
	ColumnDefault *string `gorm:"column:column_default"`
}

// buildSchema groups an ordered column listing into tables
func buildSchema(columns []columnRow) *SchemaInfo {
	schema := &SchemaInfo{
		Tables:    make(map[string]TableSchema),
		UpdatedAt: time.Now(),
	}

	for _, col := range columns {
		table := schema.Tables[col.TableName]
		table.Name = col.TableName

		info := ColumnInfo{
			Name:       col.ColumnName,
			Type:       col.DataType,
			IsNullable: strings.EqualFold(col.IsNullable, "YES"),
		}
		if col.ColumnDefault != nil {
			info.DefaultValue = *col.ColumnDefault
		}
		table.Columns = append(table.Columns, info)
		schema.Tables[col.TableName] = table
	}
	return schema
}

// attachExampleRecords adds sample rows to every table. A table whose
// sample cannot be read is described without one.
func attachExampleRecords(ctx context.Context, fetcher SchemaFetcher, schema *SchemaInfo, limit int) {
	for name, table := range schema.Tables {
		columns, rows, err := fetcher.FetchExampleRecords(ctx, name, limit)
		if err != nil {
			log.Printf("DBManager -> attachExampleRecords -> Skipping samples for %s: %v", name, err)
			continue
		}
		table.SampleColumns = columns
		table.SampleRows = rows
		schema.Tables[name] = table
	}
}

// FormatSchemaForLLM renders each table, sorted by name, as a CREATE TABLE
// statement followed by a comment holding its sample rows.
func FormatSchemaForLLM(schema *SchemaInfo, sampleRows int) string {
	tableNames := make([]string, 0, len(schema.Tables))
	for tableName := range schema.Tables {
		tableNames = append(tableNames, tableName)
	}
	sort.Strings(tableNames)

	blocks := make([]string, 0, len(tableNames))
	for _, tableName := range tableNames {
		table := schema.Tables[tableName]

		var result strings.Builder
		result.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", tableName))
		for i, column := range table.Columns {
			result.WriteString(fmt.Sprintf("\t%s %s", column.Name, column.Type))
			if !column.IsNullable {
				result.WriteString(" NOT NULL")
			}
			if column.DefaultValue != "" {
				result.WriteString(fmt.Sprintf(" DEFAULT %s", column.DefaultValue))
			}
			if i < len(table.Columns)-1 {
				result.WriteString(",")
			}
			result.WriteString("\n")
		}
		result.WriteString(")")

		if sampleRows > 0 && table.SampleColumns != nil {
			result.WriteString(fmt.Sprintf("\n\n/*\n%d rows from %s table:\n", sampleRows, tableName))
			result.WriteString(strings.Join(table.SampleColumns, "\t"))
			result.WriteString("\n")
			for _, row := range table.SampleRows {
				values := make([]string, len(row))
				for i, v := range row {
					values[i] = sampleValue(v)
				}
				result.WriteString(strings.Join(values, "\t"))
				result.WriteString("\n")
			}
			result.WriteString("*/")
		}

		blocks = append(blocks, result.String())
	}

	log.Printf("FormatSchemaForLLM -> Formatted schema with %d tables", len(tableNames))
	return strings.Join(blocks, "\n\n")
}

func sampleValue(v any) string {
	var text string
	switch val := v.(type) {
	case nil:
		text = "None"
	case string:
		text = val
	case []byte:
		text = string(val)
	case fmt.Stringer:
		text = val.String()
	default:
		text = rowcodec.FormatValue(val)
	}

	if len([]rune(text)) > maxSampleValueLength {
		text = string([]rune(text)[:maxSampleValueLength]) + "..."
	}
	return text
}
