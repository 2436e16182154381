package llm

import (
	"context"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM interactions
type Client interface {
	GenerateResponse(ctx context.Context, messages []Message) (string, error)
	GetModelInfo() ModelInfo
}

// ModelInfo contains information about the LLM model
type ModelInfo struct {
	Name                string
	Provider            string
	MaxCompletionTokens int
}

// Config holds configuration for LLM clients
type Config struct {
	Provider            string
	Model               string
	APIKey              string
	BaseURL             string
	MaxCompletionTokens int
	Temperature         float64
}

// UserMessage wraps a rendered prompt as the single user turn
func UserMessage(content string) []Message {
	return []Message{{Role: "user", Content: content}}
}
