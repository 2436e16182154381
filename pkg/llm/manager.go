package llm

import (
	"dbconsultor-ai/internal/constants"
	"fmt"
	"strings"
	"sync"
)

type Manager struct {
	clients map[string]Client
	// failures keeps the last registration error per name
	failures map[string]error
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:  make(map[string]Client),
		failures: make(map[string]error),
	}
}

func (m *Manager) RegisterClient(name string, config Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var client Client
	var err error

	switch config.Provider {
	case constants.Groq:
		if config.BaseURL == "" {
			config.BaseURL = constants.GroqBaseURL
		}
		if config.Model == "" {
			config.Model = constants.GroqModel
		}
		client, err = NewOpenAIClient(config)
	case constants.OpenAI:
		client, err = NewOpenAIClient(config)
	case constants.Gemini:
		client, err = NewGeminiClient(config)
	default:
		err = fmt.Errorf("unsupported LLM provider: %q", config.Provider)
		m.failures[name] = err
		return err
	}

	if err != nil {
		err = fmt.Errorf("failed to create LLM client: %w", err)
		m.failures[name] = err
		return err
	}

	m.clients[name] = client
	delete(m.failures, name)
	return nil
}

func (m *Manager) GetClient(name string) (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, exists := m.clients[name]
	if !exists {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}

	return client, nil
}

// ClientOrUnavailable returns the registered client, or one that fails every
// call with the reason registration failed.
func (m *Manager) ClientOrUnavailable(name string) Client {
	client, err := m.GetClient(name)
	if err == nil {
		return client
	}

	m.mu.RLock()
	reason, ok := m.failures[name]
	m.mu.RUnlock()
	if !ok {
		reason = err
	}
	return NewUnavailableClient(name, reason)
}

// Helper functions
func mapRole(role string) string {
	switch strings.ToLower(role) {
	case "user":
		return "user"
	case "assistant":
		return "assistant"
	case "system":
		return "system"
	default:
		return "user"
	}
}
