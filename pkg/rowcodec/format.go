// Package rowcodec renders query rows as a Python-style literal list of tuples
// and parses that text back into values.
//
// The text form is what the result narrator sees, so it has to look exactly
// like the result lists in the prompt examples:
//
//	[('Ana Silva', 30, datetime.date(2023, 10, 5), None), ('Carlos', 250.75, ...)]
package rowcodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Format renders rows as a list of tuples. An empty result is "[]".
func Format(rows [][]any) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeTuple(&sb, row)
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatValue renders a single value the way it appears inside a tuple.
func FormatValue(v any) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeTuple(sb *strings.Builder, values []any) {
	sb.WriteByte('(')
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(sb, v)
	}
	// one element tuples keep their trailing comma: (55,)
	if len(values) == 1 {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
}

func writeList(sb *strings.Builder, values []any) {
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(sb, v)
	}
	sb.WriteByte(']')
}

func writeValue(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		if val {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case int:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int8:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int16:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case uint:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint8:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint16:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		sb.WriteString(strconv.FormatUint(val, 10))
	case float32:
		sb.WriteString(formatFloat(float64(val)))
	case float64:
		sb.WriteString(formatFloat(val))
	case string:
		sb.WriteString(quoteString(val))
	case []byte:
		sb.WriteString(quoteBytes(val))
	case Decimal:
		sb.WriteString("Decimal(")
		sb.WriteString(quoteString(string(val)))
		sb.WriteByte(')')
	case Date:
		fmt.Fprintf(sb, "datetime.date(%d, %d, %d)", val.Year, int(val.Month), val.Day)
	case DateTime:
		writeDateTime(sb, val.Time)
	case time.Time:
		writeDateTime(sb, val)
	case Tuple:
		writeTuple(sb, val)
	case []any:
		writeList(sb, val)
	case fmt.Stringer:
		sb.WriteString(quoteString(val.String()))
	default:
		sb.WriteString(quoteString(fmt.Sprint(val)))
	}
}

// writeDateTime always keeps hour and minute, seconds and microseconds only
// when they are set.
func writeDateTime(sb *strings.Builder, t time.Time) {
	fmt.Fprintf(sb, "datetime.datetime(%d, %d, %d, %d, %d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
	micro := t.Nanosecond() / 1000
	if t.Second() != 0 || micro != 0 {
		fmt.Fprintf(sb, ", %d", t.Second())
	}
	if micro != 0 {
		fmt.Fprintf(sb, ", %d", micro)
	}
	sb.WriteByte(')')
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quoteString prefers single quotes and switches to double quotes only when
// the text holds a single quote and no double quote.
func quoteString(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(quote):
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x80 && !unicode.IsPrint(r):
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r >= 0x80 && !unicode.IsPrint(r):
			if r > 0xffff {
				fmt.Fprintf(&sb, `\U%08x`, r)
			} else if r > 0xff {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				fmt.Fprintf(&sb, `\x%02x`, r)
			}
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

func quoteBytes(b []byte) string {
	quote := byte('\'')
	if strings.Contains(string(b), "'") && !strings.Contains(string(b), `"`) {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteString("b")
	sb.WriteByte(quote)
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == quote:
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
