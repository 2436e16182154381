package llm

import (
	"context"
	"dbconsultor-ai/internal/constants"
	"fmt"
	"log"
	"math"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI compatible chat completions API. Groq is
// served by the same client pointed at its base URL.
type OpenAIClient struct {
	client              *openai.Client
	provider            string
	model               string
	maxCompletionTokens int
	temperature         float64
}

func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	provider := config.Provider
	if provider == "" {
		provider = constants.OpenAI
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIClient{
		client:              openai.NewClientWithConfig(clientConfig),
		provider:            provider,
		model:               model,
		maxCompletionTokens: config.MaxCompletionTokens,
		temperature:         config.Temperature,
	}, nil
}

func (c *OpenAIClient) GenerateResponse(ctx context.Context, messages []Message) (string, error) {
	// Check if the context is cancelled
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	openAIMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		openAIMessages = append(openAIMessages, openai.ChatCompletionMessage{
			Role:    mapRole(msg.Role),
			Content: msg.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    openAIMessages,
		Temperature: requestTemperature(c.temperature),
	}
	if c.maxCompletionTokens > 0 {
		if c.provider == constants.OpenAI {
			req.MaxCompletionTokens = c.maxCompletionTokens
		} else {
			req.MaxTokens = c.maxCompletionTokens
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("OpenAIClient -> GenerateResponse -> %s error: %v", c.provider, err)
		return "", fmt.Errorf("%s API error: %v", c.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", c.provider)
	}

	log.Printf("OpenAIClient -> GenerateResponse -> %s answered with %d completion tokens", c.provider, resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}

// requestTemperature keeps a zero temperature on the wire. The request field
// is omitempty, so a literal 0 would fall back to the provider default.
func requestTemperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func (c *OpenAIClient) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:                c.model,
		Provider:            c.provider,
		MaxCompletionTokens: c.maxCompletionTokens,
	}
}
