package dbmanager

import (
	"context"
	"database/sql"
	"dbconsultor-ai/pkg/rowcodec"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ExecuteQuery runs one statement against the backend and returns its rows
// together with the literal result text.
func (m *Manager) ExecuteQuery(ctx context.Context, backend, query string) (*QueryExecutionResult, error) {
	conn, err := m.GetConnection(ctx, backend)
	if err != nil {
		return nil, err
	}

	log.Printf("DBManager -> ExecuteQuery -> Executing on %s: %s", backend, query)
	result, err := executeReadOnly(ctx, conn.DB, query)
	if err != nil {
		log.Printf("DBManager -> ExecuteQuery -> Error: %v", err)
		return nil, err
	}
	m.touch(backend)

	log.Printf("DBManager -> ExecuteQuery -> %d row(s) in %dms", len(result.Rows), result.ExecutionTime)
	return result, nil
}

// executeReadOnly runs the statement inside a read-only transaction that is
// always rolled back, so nothing the statement does can persist.
func executeReadOnly(ctx context.Context, db *gorm.DB, query string) (*QueryExecutionResult, error) {
	startTime := time.Now()

	tx := db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin read-only transaction: %w", tx.Error)
	}
	defer func() {
		if err := tx.Rollback().Error; err != nil && err != sql.ErrTxDone {
			log.Printf("DBManager -> executeReadOnly -> Rollback error: %v", err)
		}
	}()

	rows, err := tx.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, values, err := scanRows(rows)
	if err != nil {
		return nil, err
	}

	return &QueryExecutionResult{
		Columns:       columns,
		Rows:          values,
		ResultText:    rowcodec.Format(values),
		ExecutionTime: int(time.Since(startTime).Milliseconds()),
	}, nil
}

// scanRows reads every row in column order and normalizes the driver values
// using the reported column database types.
func scanRows(rows *sql.Rows) ([]string, [][]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	typeNames := make([]string, len(columns))
	if columnTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range columnTypes {
			typeNames[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	result := [][]any{}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make([]any, len(columns))
		for i, v := range raw {
			row[i] = normalizeValue(typeNames[i], v)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return columns, result, nil
}

// normalizeValue maps a raw driver value onto the value kinds the row codec
// knows. MySQL hands most columns over as []byte, so the database type name
// decides what the bytes mean.
func normalizeValue(typeName string, v any) any {
	if v == nil {
		return nil
	}

	switch {
	case typeName == "":
		return normalizeByGoType(v)
	case strings.Contains(typeName, "INT") || typeName == "SERIAL" || typeName == "YEAR":
		return toInt(v)
	case typeName == "FLOAT" || typeName == "DOUBLE" || typeName == "REAL" ||
		typeName == "FLOAT4" || typeName == "FLOAT8" || strings.HasPrefix(typeName, "DOUBLE"):
		return toFloat(v)
	case typeName == "DECIMAL" || typeName == "NUMERIC" || strings.HasSuffix(typeName, "DECIMAL"):
		return rowcodec.Decimal(toText(v))
	case typeName == "DATE":
		if t, ok := toTime(v, "2006-01-02"); ok {
			return rowcodec.DateOf(t)
		}
	case typeName == "DATETIME" || strings.HasPrefix(typeName, "TIMESTAMP"):
		if t, ok := toTime(v, "2006-01-02 15:04:05.999999"); ok {
			return rowcodec.DateTime{Time: t}
		}
	case typeName == "BOOL" || typeName == "BOOLEAN":
		if b, ok := v.(bool); ok {
			return b
		}
		if b, err := strconv.ParseBool(toText(v)); err == nil {
			return b
		}
	case strings.Contains(typeName, "BLOB") || strings.Contains(typeName, "BINARY") || typeName == "BYTEA":
		if b, ok := v.([]byte); ok {
			out := make([]byte, len(b))
			copy(out, b)
			return out
		}
	}

	return normalizeByGoType(v)
}

func normalizeByGoType(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	case time.Time:
		return rowcodec.DateTime{Time: val}
	case int64, uint64, float64, bool, string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func toText(v any) string {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func toInt(v any) any {
	switch val := v.(type) {
	case int64, uint64:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	}

	text := toText(v)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return n
	}
	return text
}

func toFloat(v any) any {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	}

	text := toText(v)
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

func toTime(v any, layout string) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	t, err := time.Parse(layout, toText(v))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
