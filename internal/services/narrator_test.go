package services

import (
	"context"
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/pkg/dbmanager"
	"dbconsultor-ai/pkg/rowcodec"
	"errors"
	"strings"
	"testing"
	"time"
)

func resultOf(text string, values ...any) *dbmanager.QueryExecutionResult {
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v}
	}
	return &dbmanager.QueryExecutionResult{Rows: rows, ResultText: text}
}

func TestRenderNarrative(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want string
	}{
		{
			name: "empty",
			rows: [][]any{},
			want: "A consulta não retornou resultados.",
		},
		{
			name: "scalar",
			rows: [][]any{{int64(55)}},
			want: "O resultado da consulta é: 55",
		},
		{
			name: "single column",
			rows: [][]any{{"Vendas"}, {"Marketing"}},
			want: "Os dados encontrados foram:\n- Vendas\n- Marketing",
		},
		{
			name: "mixed types",
			rows: [][]any{
				{"Ana Silva", int64(30), rowcodec.Date{Year: 2023, Month: time.October, Day: 5}, nil},
				{"Carlos Souza", 250.75, rowcodec.Date{Year: 2022, Month: time.March, Day: 1}, "Ativo"},
			},
			want: "Os dados encontrados foram:\n" +
				"- Registro 1: Ana Silva, 30, 05/10/2023, (não informado)\n" +
				"- Registro 2: Carlos Souza, 250.75, 01/03/2022, Ativo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderNarrative(tt.rows); got != tt.want {
				t.Fatalf("RenderNarrative() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderNarrativeFromParsedText(t *testing.T) {
	rows, err := rowcodec.ParseRows("[('Vendas',), ('Marketing',)]")
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	got := RenderNarrative(rows)
	if got != "Os dados encontrados foram:\n- Vendas\n- Marketing" {
		t.Fatalf("RenderNarrative() = %q", got)
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "(não informado)"},
		{true, "Sim"},
		{rowcodec.Decimal("19.90"), "19.90"},
		{rowcodec.DateTime{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}, "02/01/2024 03:04:05"},
		{[]byte("abc"), "abc"},
		{12, "12"},
	}
	for _, tt := range tests {
		if got := DisplayValue(tt.in); got != tt.want {
			t.Fatalf("DisplayValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNarratorReturnsModelOutputVerbatim(t *testing.T) {
	model := &fakeLLM{answers: []string{"  Os dados encontrados foram:\n- Vendas  "}}
	narrator := NewResultNarrator(model, constants.NarrationModeLLM)

	got, err := narrator.Narrate(context.Background(), "schema", "setores?", "SELECT name FROM sectors", resultOf("[('Vendas',)]", "Vendas"))
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if got != "  Os dados encontrados foram:\n- Vendas  " {
		t.Fatalf("Narrate() = %q", got)
	}
	if !strings.Contains(model.prompts[0], "Pergunta Original do Usuário: setores?") {
		t.Fatalf("prompt:\n%s", model.prompts[0])
	}
}

func TestSynthesizerSanitizesFencedOutput(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"```sql\nSELECT name FROM clients\n```", "SELECT name FROM clients"},
		{"```\nSHOW TABLES\n```", "SHOW TABLES"},
		{"\"SELECT 1\"", "SELECT 1"},
		{"  with t as (select 1) select * from t  ", "with t as (select 1) select * from t"},
	}
	for _, tt := range tests {
		synthesizer := NewSQLSynthesizer(&fakeLLM{answers: []string{tt.answer}})
		got, err := synthesizer.Synthesize(context.Background(), "schema", "q", nil)
		if err != nil {
			t.Fatalf("Synthesize(%q) error = %v", tt.answer, err)
		}
		if got != tt.want {
			t.Fatalf("Synthesize(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestSynthesizerRejectsNonReadOnlyOutput(t *testing.T) {
	for _, answer := range []string{"", "```sql\n```", "Claro! Aqui está: SELECT 1", "UPDATE clients SET name = 'x'"} {
		synthesizer := NewSQLSynthesizer(&fakeLLM{answers: []string{answer}})
		_, err := synthesizer.Synthesize(context.Background(), "schema", "q", nil)
		if !errors.Is(err, ErrNoValidQuery) {
			t.Fatalf("Synthesize(%q) error = %v, want ErrNoValidQuery", answer, err)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	if got := FormatHistory(nil); got != "[]" {
		t.Fatalf("FormatHistory(nil) = %q", got)
	}
	got := FormatHistory([]dtos.ConversationTurn{{Question: "a", Answer: "b"}, {Question: "c", Answer: "d"}})
	if got != "\nUsuário: a\nAssistente: b\nUsuário: c\nAssistente: d" {
		t.Fatalf("FormatHistory() = %q", got)
	}
}

func TestIsTableNotFound(t *testing.T) {
	if !IsTableNotFound(errors.New("Error 1146 (42S02): Table 'db.x' doesn't exist")) {
		t.Fatal("expected a match")
	}
	if IsTableNotFound(errors.New("pq: relation \"x\" does not exist")) {
		t.Fatal("only the 1146 pattern is special-cased")
	}
	if IsTableNotFound(nil) {
		t.Fatal("nil is not a failure")
	}
}
