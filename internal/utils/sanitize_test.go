package utils

import "testing"

func TestSanitizeSQL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "SELECT 1", want: "SELECT 1"},
		{name: "sql fence", in: "```sql\nSELECT name FROM clients\n```", want: "SELECT name FROM clients"},
		{name: "bare fence", in: "```\nSELECT name FROM clients\n```", want: "SELECT name FROM clients"},
		{name: "surrounding whitespace", in: "  \n SELECT 1 \n", want: "SELECT 1"},
		{name: "double quoted", in: `"SELECT * FROM t"`, want: "SELECT * FROM t"},
		{name: "single quoted", in: "'SELECT * FROM t'", want: "SELECT * FROM t"},
		{name: "one layer only", in: `""SELECT 1""`, want: `"SELECT 1"`},
		{name: "mismatched quotes kept", in: `'SELECT 1"`, want: `'SELECT 1"`},
		{name: "inner literal kept", in: "SELECT * FROM t WHERE name = 'Ana'", want: "SELECT * FROM t WHERE name = 'Ana'"},
		{name: "fenced and quoted", in: "```sql\n\"SELECT 1\"\n```", want: "SELECT 1"},
		{name: "empty", in: "   ", want: ""},
		{name: "lone single quote", in: "'", want: ""},
		{name: "lone double quote", in: " \" ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeSQL(tc.in); got != tc.want {
				t.Fatalf("SanitizeSQL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidateReadOnlySQL(t *testing.T) {
	accepted := []string{
		"SELECT name FROM clients",
		"select count(*) from orders",
		"  SHOW TABLES",
		"describe clients",
		"WITH t AS (SELECT 1) SELECT * FROM t",
	}
	for _, query := range accepted {
		if err := ValidateReadOnlySQL(query); err != nil {
			t.Fatalf("ValidateReadOnlySQL(%q) error = %v", query, err)
		}
	}

	rejected := []string{
		"",
		"DELETE FROM clients",
		"DROP TABLE clients",
		"Desculpe, não consigo responder isso.",
		"UPDATE clients SET name = 'x'",
	}
	for _, query := range rejected {
		if err := ValidateReadOnlySQL(query); err == nil {
			t.Fatalf("ValidateReadOnlySQL(%q) expected error", query)
		}
	}

	if err := ValidateReadOnlySQL(" "); err != ErrEmptyQuery {
		t.Fatalf("blank query error = %v, want ErrEmptyQuery", err)
	}
}
