package utils

import (
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/pkg/rowcodec"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// selectListPattern captures everything between the first SELECT and the
// first FROM that follows it.
var selectListPattern = regexp.MustCompile(`(?is)SELECT(.*?)FROM`)

// Table is a best-effort tabular view of a raw result string. Exactly one of
// Rows, Notice or Warning describes the outcome; Raw is set with Warning.
type Table struct {
	Columns []string
	Rows    [][]any
	Notice  string
	Warning string
	Raw     string
}

// GuessColumnNames reads column labels from the select list. Expressions,
// aliases and * are not understood, so the result is only a hint.
func GuessColumnNames(query string) []string {
	match := selectListPattern.FindStringSubmatch(query)
	if match == nil {
		return nil
	}

	parts := strings.Split(match[1], ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.ReplaceAll(strings.TrimSpace(part), "`", "")
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		columns = append(columns, name)
	}
	return columns
}

// ReconstructTable turns the raw result text back into rows and labels them
// with the guessed column names. It never fails; problems are reported in
// Warning together with the raw text.
func ReconstructTable(rawResult, query string) Table {
	rows, err := rowcodec.ParseRows(rawResult)
	if err != nil {
		return fallbackTable(rawResult, err)
	}

	if len(rows) == 0 {
		return Table{Notice: constants.MessageEmptyTable}
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return fallbackTable(rawResult, fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), width))
		}
	}

	columns := GuessColumnNames(query)
	if columns != nil && len(columns) != width {
		return fallbackTable(rawResult, fmt.Errorf("%d columns passed, passed data had %d columns", len(columns), width))
	}

	for _, row := range rows {
		for j, v := range row {
			row[j] = displayableCell(v)
		}
	}
	return Table{Columns: columns, Rows: rows}
}

// displayableCell replaces nan and inf, which JSON cannot carry, with their
// literal text.
func displayableCell(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return rowcodec.FormatValue(val)
		}
	case rowcodec.Tuple:
		for i, item := range val {
			val[i] = displayableCell(item)
		}
	case []any:
		for i, item := range val {
			val[i] = displayableCell(item)
		}
	}
	return v
}

func fallbackTable(rawResult string, err error) Table {
	return Table{
		Warning: fmt.Sprintf(constants.MessageTableFallback, err),
		Raw:     rawResult,
	}
}
