package llm

import (
	"context"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/internal/utils"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client              *genai.Client
	model               string
	maxCompletionTokens int
	temperature         float64
}

func NewGeminiClient(config Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	// Create the Gemini SDK client using the provided API key.
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	model := config.Model
	if model == "" {
		model = constants.GeminiModel
	}

	return &GeminiClient{
		client:              client,
		model:               model,
		maxCompletionTokens: config.MaxCompletionTokens,
		temperature:         config.Temperature,
	}, nil
}

func (c *GeminiClient) GenerateResponse(ctx context.Context, messages []Message) (string, error) {
	// Check if the context is cancelled
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	model := c.client.GenerativeModel(c.model)
	if c.maxCompletionTokens > 0 {
		model.MaxOutputTokens = utils.Ptr(int32(c.maxCompletionTokens))
	}
	model.SetTemperature(float32(c.temperature))

	// Everything before the last message becomes chat history; system
	// messages go into the system instruction.
	var systemParts []genai.Part
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages[:len(messages)-1] {
		if msg.Role == "system" {
			systemParts = append(systemParts, genai.Text(msg.Content))
			continue
		}
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	if len(systemParts) > 0 {
		model.SystemInstruction = &genai.Content{Parts: systemParts}
	}

	session := model.StartChat()
	session.History = history

	result, err := session.SendMessage(ctx, genai.Text(messages[len(messages)-1].Content))
	if err != nil {
		log.Printf("GeminiClient -> GenerateResponse -> Gemini API error: %v", err)
		return "", fmt.Errorf("gemini API error: %v", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var response strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			response.WriteString(string(text))
		}
	}
	return response.String(), nil
}

// GetModelInfo returns information about the Gemini model.
func (c *GeminiClient) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:                c.model,
		Provider:            constants.Gemini,
		MaxCompletionTokens: c.maxCompletionTokens,
	}
}
