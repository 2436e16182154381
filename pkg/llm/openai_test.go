package llm

import (
	"context"
	"dbconsultor-ai/internal/constants"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

func newCompletionServer(t *testing.T, answer string, captured *chatRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   captured.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": answer},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGroqClientSendsSingleUserMessage(t *testing.T) {
	var captured chatRequest
	server := newCompletionServer(t, "SELECT name FROM clients", &captured)

	manager := NewManager()
	err := manager.RegisterClient(constants.Groq, Config{
		Provider:            constants.Groq,
		APIKey:              "test-key",
		BaseURL:             server.URL,
		MaxCompletionTokens: 256,
	})
	if err != nil {
		t.Fatalf("RegisterClient() error = %v", err)
	}
	client, err := manager.GetClient(constants.Groq)
	if err != nil {
		t.Fatalf("GetClient() error = %v", err)
	}

	answer, err := client.GenerateResponse(context.Background(), UserMessage("Quais clientes existem?"))
	if err != nil {
		t.Fatalf("GenerateResponse() error = %v", err)
	}
	if answer != "SELECT name FROM clients" {
		t.Fatalf("answer = %q", answer)
	}

	if captured.Model != constants.GroqModel {
		t.Fatalf("model = %q, want %q", captured.Model, constants.GroqModel)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" || captured.Messages[0].Content != "Quais clientes existem?" {
		t.Fatalf("messages = %#v", captured.Messages)
	}
	if captured.Temperature == nil || *captured.Temperature > 1e-6 {
		t.Fatalf("temperature should be sent as (almost) zero, got %v", captured.Temperature)
	}
	if captured.MaxTokens != 256 {
		t.Fatalf("max_tokens = %d", captured.MaxTokens)
	}

	info := client.GetModelInfo()
	if info.Provider != constants.Groq {
		t.Fatalf("provider = %q", info.Provider)
	}
}

func TestOpenAIClientReportsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewOpenAIClient(Config{Provider: constants.OpenAI, APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}

	_, err = client.GenerateResponse(context.Background(), UserMessage("oi"))
	if err == nil || !strings.Contains(err.Error(), "Invalid API Key") {
		t.Fatalf("GenerateResponse() error = %v", err)
	}
}

func TestRegisterClientValidation(t *testing.T) {
	manager := NewManager()

	if err := manager.RegisterClient("x", Config{Provider: "llamafile", APIKey: "k"}); err == nil {
		t.Fatal("expected unsupported provider error")
	}
	if err := manager.RegisterClient(constants.Groq, Config{Provider: constants.Groq}); err == nil {
		t.Fatal("expected missing API key error")
	}
	if _, err := manager.GetClient(constants.Groq); err == nil {
		t.Fatal("failed registration should not leave a client behind")
	}
}

func TestClientOrUnavailableWithoutAPIKey(t *testing.T) {
	manager := NewManager()
	if err := manager.RegisterClient(constants.Groq, Config{Provider: constants.Groq}); err == nil {
		t.Fatal("expected missing API key error")
	}

	client := manager.ClientOrUnavailable(constants.Groq)
	if _, ok := client.(*UnavailableClient); !ok {
		t.Fatalf("ClientOrUnavailable() = %T, want *UnavailableClient", client)
	}
	_, err := client.GenerateResponse(context.Background(), UserMessage("oi"))
	if err == nil || !strings.Contains(err.Error(), "API key is required") {
		t.Fatalf("GenerateResponse() error = %v", err)
	}

	// a name that was never registered still yields a client
	if _, err := manager.ClientOrUnavailable("mistral").GenerateResponse(context.Background(), UserMessage("oi")); err == nil {
		t.Fatal("expected an error for an unregistered client")
	}
}

func TestClientOrUnavailableReturnsRegisteredClient(t *testing.T) {
	manager := NewManager()
	if err := manager.RegisterClient(constants.Groq, Config{Provider: constants.Groq, APIKey: "test-key"}); err != nil {
		t.Fatalf("RegisterClient() error = %v", err)
	}
	if _, ok := manager.ClientOrUnavailable(constants.Groq).(*OpenAIClient); !ok {
		t.Fatal("registered client should be returned")
	}
}
