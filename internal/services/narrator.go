package services

import (
	"context"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/internal/metrics"
	"dbconsultor-ai/pkg/dbmanager"
	"dbconsultor-ai/pkg/llm"
	"dbconsultor-ai/pkg/rowcodec"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"
)

var resultFormattingTemplate = template.Must(template.New("result_formatting").Parse(constants.ResultFormattingPrompt))

const notInformed = "(não informado)"

type resultPromptData struct {
	Schema   string
	Question string
	Query    string
	RawData  string
}

// ResultNarrator describes a query result in Portuguese, either through the
// model or with the local renderer.
type ResultNarrator struct {
	client llm.Client
	mode   string
}

func NewResultNarrator(client llm.Client, mode string) *ResultNarrator {
	if mode == "" {
		mode = constants.NarrationModeLLM
	}
	return &ResultNarrator{client: client, mode: mode}
}

func (n *ResultNarrator) BuildPrompt(schema, question, query, rawResult string) (string, error) {
	var sb strings.Builder
	err := resultFormattingTemplate.Execute(&sb, resultPromptData{
		Schema:   schema,
		Question: question,
		Query:    query,
		RawData:  rawResult,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render result prompt: %w", err)
	}
	return sb.String(), nil
}

// Narrate returns the model's answer verbatim. Empty results and local mode
// never reach the model.
func (n *ResultNarrator) Narrate(ctx context.Context, schema, question, query string, result *dbmanager.QueryExecutionResult) (string, error) {
	if len(result.Rows) == 0 {
		return constants.MessageNoResults, nil
	}
	if n.mode == constants.NarrationModeLocal {
		return RenderNarrative(result.Rows), nil
	}

	prompt, err := n.BuildPrompt(schema, question, query, result.ResultText)
	if err != nil {
		return "", err
	}

	startTime := time.Now()
	answer, err := n.client.GenerateResponse(ctx, llm.UserMessage(prompt))
	metrics.ObserveLLMRequest(n.client.GetModelInfo().Provider, constants.LLMPurposeResultFormatting, err)
	metrics.ObserveStage("narrate", time.Since(startTime))
	if err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}
	return answer, nil
}

// RenderNarrative applies the narration rules without a model: a scalar
// becomes one sentence, single column rows a bullet list and wider rows a
// numbered record list.
func RenderNarrative(rows [][]any) string {
	if len(rows) == 0 {
		return constants.MessageNoResults
	}
	if len(rows) == 1 && len(rows[0]) == 1 {
		return "O resultado da consulta é: " + DisplayValue(rows[0][0])
	}

	singleColumn := true
	for _, row := range rows {
		if len(row) != 1 {
			singleColumn = false
			break
		}
	}

	var sb strings.Builder
	sb.WriteString("Os dados encontrados foram:")
	for i, row := range rows {
		sb.WriteString("\n- ")
		if singleColumn {
			sb.WriteString(DisplayValue(row[0]))
			continue
		}
		values := make([]string, len(row))
		for j, v := range row {
			values[j] = DisplayValue(v)
		}
		fmt.Fprintf(&sb, "Registro %d: %s", i+1, strings.Join(values, ", "))
	}
	return sb.String()
}

// DisplayValue renders one cell for people rather than for the literal
// format: dates as DD/MM/YYYY and NULL as "(não informado)".
func DisplayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return notInformed
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		if val {
			return "Sim"
		}
		return "Não"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case rowcodec.Decimal:
		return string(val)
	case rowcodec.Date:
		return fmt.Sprintf("%02d/%02d/%04d", val.Day, int(val.Month), val.Year)
	case rowcodec.DateTime:
		return val.Format("02/01/2006 15:04:05")
	case time.Time:
		return val.Format("02/01/2006 15:04:05")
	case rowcodec.Tuple:
		return displayList(val)
	case []any:
		return displayList(val)
	default:
		return fmt.Sprint(val)
	}
}

func displayList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = DisplayValue(v)
	}
	return strings.Join(parts, ", ")
}
