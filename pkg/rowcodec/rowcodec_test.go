package rowcodec

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestFormatMatchesNarratorExamples(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want string
	}{
		{name: "empty", rows: nil, want: "[]"},
		{name: "scalar", rows: [][]any{{int64(55)}}, want: "[(55,)]"},
		{
			name: "single column",
			rows: [][]any{{"Vendas"}, {"Marketing"}, {"Engenharia"}},
			want: "[('Vendas',), ('Marketing',), ('Engenharia',)]",
		},
		{
			name: "mixed",
			rows: [][]any{
				{"Ana Silva", int64(30), Date{Year: 2023, Month: time.October, Day: 5}, nil},
				{"Carlos Souza", 250.75, Date{Year: 2022, Month: time.March, Day: 1}, "Ativo"},
			},
			want: "[('Ana Silva', 30, datetime.date(2023, 10, 5), None), ('Carlos Souza', 250.75, datetime.date(2022, 3, 1), 'Ativo')]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.rows); got != tc.want {
				t.Fatalf("Format() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{true, "True"},
		{false, "False"},
		{1.0, "1.0"},
		{0.1, "0.1"},
		{1e16, "1e+16"},
		{1.5e-05, "1.5e-05"},
		{"it's", `"it's"`},
		{`say "hi" it's`, `'say "hi" it\'s'`},
		{"a\nb", `'a\nb'`},
		{`c:\tmp`, `'c:\\tmp'`},
		{"São Paulo", "'São Paulo'"},
		{Decimal("250.75"), "Decimal('250.75')"},
		{DateTime{Time: time.Date(2023, 10, 5, 14, 30, 0, 0, time.UTC)}, "datetime.datetime(2023, 10, 5, 14, 30)"},
		{DateTime{Time: time.Date(2023, 10, 5, 14, 30, 12, 500000000, time.UTC)}, "datetime.datetime(2023, 10, 5, 14, 30, 12, 500000)"},
		{[]byte("ab\x00"), `b'ab\x00'`},
	}

	for _, tc := range tests {
		if got := FormatValue(tc.in); got != tc.want {
			t.Fatalf("FormatValue(%#v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseRows(t *testing.T) {
	rows, err := ParseRows("[('Ana Silva', 30, datetime.date(2023, 10, 5), None), ('Carlos', Decimal('250.75'), datetime.datetime(2022, 3, 1, 8, 15), True)]")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}

	want := [][]any{
		{"Ana Silva", int64(30), Date{Year: 2023, Month: time.October, Day: 5}, nil},
		{"Carlos", Decimal("250.75"), DateTime{Time: time.Date(2022, 3, 1, 8, 15, 0, 0, time.UTC)}, true},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("ParseRows() = %#v, want %#v", rows, want)
	}
}

func TestParseRowsSingleElementTuple(t *testing.T) {
	rows, err := ParseRows("[(55,)]")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != 1 || rows[0][0] != int64(55) {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestParseRowsEmpty(t *testing.T) {
	rows, err := ParseRows(" [] ")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %#v", rows)
	}
}

func TestParseStringEscapes(t *testing.T) {
	v, err := Parse(`('it\'s', "a\"b", 'tab\there', '\xe9\u00e7')`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Tuple{"it's", `a"b`, "tab\there", "éç"}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("Parse() = %#v, want %#v", v, want)
	}
}

func TestParseNumbers(t *testing.T) {
	v, err := Parse("[-3, 2.5, 1e3, 123456789012345678901234567890]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []any{int64(-3), 2.5, 1000.0, Decimal("123456789012345678901234567890")}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("Parse() = %#v, want %#v", v, want)
	}
}

func TestRoundTrip(t *testing.T) {
	rows := [][]any{
		{"O'Brien", int64(-7), 3.25, nil, false},
		{"linha\nnova", int64(0), 1.0, Decimal("0.10"), true},
	}

	parsed, err := ParseRows(Format(rows))
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if !reflect.DeepEqual(parsed, rows) {
		t.Fatalf("round trip = %#v, want %#v", parsed, rows)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"[('a', 1)",
		"[('a' 1)]",
		"'unterminated",
		"[os.system('ls')]",
		"[(1,)] trailing",
		"datetime.date(2023, 10)",
	}

	for _, in := range tests {
		_, err := ParseRows(in)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("ParseRows(%q) error = %v, want SyntaxError", in, err)
		}
	}
}

func TestParseRowsRejectsScalars(t *testing.T) {
	if _, err := ParseRows("55"); !errors.Is(err, ErrNotRows) {
		t.Fatalf("ParseRows(55) error = %v, want ErrNotRows", err)
	}
	if _, err := ParseRows("[1, 2]"); !errors.Is(err, ErrNotRows) {
		t.Fatalf("ParseRows([1, 2]) error = %v, want ErrNotRows", err)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	rows := [][]any{{[]byte{0xff, 0x00, 'a', '\\', 'u'}}}

	text := Format(rows)
	parsed, err := ParseRows(text)
	if err != nil {
		t.Fatalf("ParseRows(%q) error = %v", text, err)
	}
	if !reflect.DeepEqual(parsed, rows) {
		t.Fatalf("round trip of %q = %#v, want %#v", text, parsed, rows)
	}

	v, err := Parse(`b'\u00e9\xe9'`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := []byte{'\\', 'u', '0', '0', 'e', '9', 0xe9}; !reflect.DeepEqual(v, want) {
		t.Fatalf("Parse() = %#v, want %#v", v, want)
	}
}
