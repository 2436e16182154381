package llm

import (
	"context"
	"fmt"
)

// UnavailableClient stands in for a provider that could not be set up, such
// as one without an API key. The server still starts and each request fails
// when it reaches the model.
type UnavailableClient struct {
	name   string
	reason error
}

func NewUnavailableClient(name string, reason error) *UnavailableClient {
	return &UnavailableClient{name: name, reason: reason}
}

func (c *UnavailableClient) GenerateResponse(ctx context.Context, _ []Message) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return "", fmt.Errorf("LLM client %s is unavailable: %w", c.name, c.reason)
}

func (c *UnavailableClient) GetModelInfo() ModelInfo {
	return ModelInfo{Name: "unavailable", Provider: c.name}
}
