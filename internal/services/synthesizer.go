package services

import (
	"context"
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/internal/metrics"
	"dbconsultor-ai/internal/utils"
	"dbconsultor-ai/pkg/llm"
	"fmt"
	"log"
	"strings"
	"text/template"
	"time"
)

var sqlGenerationTemplate = template.Must(template.New("sql_generation").Parse(constants.SQLGenerationPrompt))

type sqlPromptData struct {
	Schema      string
	ChatHistory string
	Question    string
}

// SQLSynthesizer turns a question into one read-only SQL statement.
type SQLSynthesizer struct {
	client llm.Client
}

func NewSQLSynthesizer(client llm.Client) *SQLSynthesizer {
	return &SQLSynthesizer{client: client}
}

// BuildPrompt renders the SQL generation prompt.
func (s *SQLSynthesizer) BuildPrompt(schema, question string, history []dtos.ConversationTurn) (string, error) {
	var sb strings.Builder
	err := sqlGenerationTemplate.Execute(&sb, sqlPromptData{
		Schema:      schema,
		ChatHistory: FormatHistory(history),
		Question:    question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render SQL prompt: %w", err)
	}
	return sb.String(), nil
}

// Synthesize asks the model for a statement, cleans it up and checks it
// against the read-only allow-list. Rejected output comes back as an
// *InvalidQueryError and is never executed.
func (s *SQLSynthesizer) Synthesize(ctx context.Context, schema, question string, history []dtos.ConversationTurn) (string, error) {
	prompt, err := s.BuildPrompt(schema, question, history)
	if err != nil {
		return "", err
	}

	startTime := time.Now()
	answer, err := s.client.GenerateResponse(ctx, llm.UserMessage(prompt))
	metrics.ObserveLLMRequest(s.client.GetModelInfo().Provider, constants.LLMPurposeSQLGeneration, err)
	metrics.ObserveStage("synthesize", time.Since(startTime))
	if err != nil {
		return "", fmt.Errorf("failed to generate SQL: %w", err)
	}

	query := utils.SanitizeSQL(answer)
	if err := utils.ValidateReadOnlySQL(query); err != nil {
		log.Printf("SQLSynthesizer -> Synthesize -> rejected model output %q: %v", query, err)
		return "", &InvalidQueryError{Text: query, Err: err}
	}

	log.Printf("SQLSynthesizer -> Synthesize -> generated: %s", query)
	return query, nil
}

// FormatHistory renders previous turns for the prompt. No history is "[]".
func FormatHistory(history []dtos.ConversationTurn) string {
	if len(history) == 0 {
		return "[]"
	}

	var sb strings.Builder
	for _, turn := range history {
		sb.WriteString("\nUsuário: ")
		sb.WriteString(turn.Question)
		sb.WriteString("\nAssistente: ")
		sb.WriteString(turn.Answer)
	}
	return sb.String()
}
