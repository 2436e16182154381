package rowcodec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// SyntaxError reports where the literal text stopped making sense.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rowcodec: %s at offset %d", e.Msg, e.Offset)
}

// ErrNotRows is returned by ParseRows when the text is valid but is not a
// list of sequences.
var ErrNotRows = errors.New("rowcodec: value is not a list of rows")

// Parse reads one literal value. Lists become []any, tuples become Tuple,
// integers int64, floats float64, None nil, and the datetime and Decimal
// constructors become Date, DateTime and Decimal.
func Parse(text string) (any, error) {
	p := &parser{src: text}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing input %q", p.rest(10))
	}
	return v, nil
}

// ParseRows reads a list of tuples (or lists) into rows.
func ParseRows(text string) ([][]any, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}

	var items []any
	switch val := v.(type) {
	case []any:
		items = val
	case Tuple:
		items = val
	default:
		return nil, ErrNotRows
	}

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		switch row := item.(type) {
		case Tuple:
			rows = append(rows, []any(row))
		case []any:
			rows = append(rows, row)
		default:
			return nil, ErrNotRows
		}
	}
	return rows, nil
}

type parser struct {
	src string
	pos int
	// inBytes is set while reading a b'...' literal, where escapes and
	// characters stand for single bytes.
	inBytes bool
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) rest(n int) string {
	if p.pos+n > len(p.src) {
		return p.src[p.pos:]
	}
	return p.src[p.pos : p.pos+n]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		if p.pos >= len(p.src) {
			return p.errorf("expected %q, got end of input", c)
		}
		return p.errorf("expected %q, got %q", c, p.src[p.pos])
	}
	p.pos++
	return nil
}

func (p *parser) value() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}

	c := p.src[p.pos]
	switch {
	case c == '[':
		p.pos++
		items, err := p.sequence(']')
		if err != nil {
			return nil, err
		}
		return items, nil
	case c == '(':
		p.pos++
		items, err := p.sequence(')')
		if err != nil {
			return nil, err
		}
		return Tuple(items), nil
	case c == '\'' || c == '"':
		return p.str()
	case (c == 'b' || c == 'B') && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '\'' || p.src[p.pos+1] == '"'):
		p.pos++
		p.inBytes = true
		s, err := p.str()
		p.inBytes = false
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		return p.identifier()
	}
	return nil, p.errorf("unexpected character %q", c)
}

// sequence reads comma separated values up to the closing delimiter. A
// trailing comma is allowed, as in (55,).
func (p *parser) sequence(closing byte) ([]any, error) {
	items := []any{}
	for {
		p.skipSpace()
		if p.peek() == closing {
			p.pos++
			return items, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++
			return items, nil
		default:
			if p.pos >= len(p.src) {
				return nil, p.errorf("unterminated sequence")
			}
			return nil, p.errorf("expected ',' or %q, got %q", closing, p.src[p.pos])
		}
	}
}

func (p *parser) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		case p.inBytes:
			sb.WriteByte(c)
			p.pos++
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *parser) escape(sb *strings.Builder) error {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return p.errorf("unterminated escape")
	}

	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		sb.WriteByte(c)
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'a':
		sb.WriteByte('\a')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		return p.hexEscape(sb, 2)
	case 'u', 'U':
		if p.inBytes {
			// not an escape inside bytes
			sb.WriteByte('\\')
			sb.WriteByte(c)
			return nil
		}
		if c == 'u' {
			return p.hexEscape(sb, 4)
		}
		return p.hexEscape(sb, 8)
	default:
		sb.WriteByte('\\')
		sb.WriteByte(c)
	}
	return nil
}

func (p *parser) hexEscape(sb *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("truncated \\x escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("invalid hex escape %q", p.src[p.pos:p.pos+digits])
	}
	p.pos += digits
	if p.inBytes {
		sb.WriteByte(byte(n))
		return nil
	}
	sb.WriteRune(rune(n))
	return nil
}

func (p *parser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
		// -inf
		if strings.HasPrefix(p.src[p.pos:], "inf") {
			p.pos += 3
			if p.src[start] == '-' {
				return math.Inf(-1), nil
			}
			return math.Inf(1), nil
		}
	}

	isFloat := false
	for scanning := true; scanning && p.pos < len(p.src); {
		c := p.src[p.pos]
		switch {
		case isDigit(c) || c == '_':
			p.pos++
		case c == '.':
			isFloat = true
			p.pos++
		case c == 'e' || c == 'E':
			isFloat = true
			p.pos++
			if n := p.peek(); n == '-' || n == '+' {
				p.pos++
			}
		default:
			scanning = false
		}
	}

	lit := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if lit == "" || lit == "-" || lit == "+" {
		return nil, p.errorf("invalid number")
	}

	if !isFloat {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n, nil
		}
		// beyond int64, keep the digits exact
		if _, err := strconv.ParseFloat(lit, 64); err == nil {
			return Decimal(strings.TrimPrefix(lit, "+")), nil
		}
		return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid integer %q", lit)}
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid float %q", lit)}
	}
	return f, nil
}

func (p *parser) identifier() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && (isIdentStart(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	name := p.src[start:p.pos]

	switch name {
	case "None":
		return nil, nil
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "inf":
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	case "datetime.date", "date":
		args, err := p.intArgs(name, 3, 3)
		if err != nil {
			return nil, err
		}
		return Date{Year: args[0], Month: time.Month(args[1]), Day: args[2]}, nil
	case "datetime.datetime", "datetime":
		args, err := p.intArgs(name, 3, 7)
		if err != nil {
			return nil, err
		}
		for len(args) < 7 {
			args = append(args, 0)
		}
		t := time.Date(args[0], time.Month(args[1]), args[2], args[3], args[4], args[5], args[6]*1000, time.UTC)
		return DateTime{Time: t}, nil
	case "Decimal", "decimal.Decimal":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		p.skipSpace()
		var lit string
		switch c := p.peek(); {
		case c == '\'' || c == '"':
			s, err := p.str()
			if err != nil {
				return nil, err
			}
			lit = s
		default:
			n, err := p.number()
			if err != nil {
				return nil, err
			}
			lit = FormatValue(n)
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return Decimal(lit), nil
	}
	return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("unsupported name %q", name)}
}

// intArgs reads a parenthesized list of integer arguments. Keyword
// arguments such as tzinfo=... are rejected.
func (p *parser) intArgs(name string, lo, hi int) ([]int, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	raw, err := p.sequence(')')
	if err != nil {
		return nil, err
	}
	if len(raw) < lo || len(raw) > hi {
		return nil, p.errorf("%s takes %d to %d arguments, got %d", name, lo, hi, len(raw))
	}

	args := make([]int, len(raw))
	for i, v := range raw {
		n, ok := v.(int64)
		if !ok {
			return nil, p.errorf("%s argument %d is not an integer", name, i+1)
		}
		args[i] = int(n)
	}
	return args, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
