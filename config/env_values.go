package config

import (
	"dbconsultor-ai/internal/constants"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Environment struct {
	// Server configs
	IsDocker          bool
	Port              string
	Environment       string
	CorsAllowedOrigin string

	// Target databases. An empty URI disables that backend.
	MySQLURI         string
	PostgresURI      string
	SchemaSampleRows int

	// Pipeline configs
	NarrationMode    string
	DefaultLLMClient string

	// Groq configs (OpenAI compatible API)
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// OpenAI configs
	OpenAIAPIKey              string
	OpenAIModel               string
	OpenAIBaseURL             string
	OpenAIMaxCompletionTokens int
	OpenAITemperature         float64

	// Gemini configs
	GeminiAPIKey              string
	GeminiModel               string
	GeminiMaxCompletionTokens int
	GeminiTemperature         float64

	// Redis configs, query log is disabled without a host
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string

	QueryLogLimit    int
	QueryLogTTLHours int
}

var Env Environment

// LoadEnv loads environment variables from .env file if present
// and validates them
func LoadEnv() error {
	// Check if running in Docker
	Env.IsDocker = os.Getenv("IS_DOCKER") == "true"

	// Load .env file only if not running in Docker
	if !Env.IsDocker {
		if err := godotenv.Load(); err != nil {
			fmt.Printf("Warning: .env file not found: %v\n", err)
		}
	}

	// Server configs
	Env.Port = getEnvWithDefault("PORT", "3000")
	Env.Environment = getEnvWithDefault("ENVIRONMENT", "DEVELOPMENT")
	Env.CorsAllowedOrigin = getEnvWithDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	// Target databases
	Env.MySQLURI = os.Getenv("MYSQL_URI")
	Env.PostgresURI = os.Getenv("POSTGRES_URI")
	Env.SchemaSampleRows = getIntEnvWithDefault("SCHEMA_SAMPLE_ROWS", 3)

	// Pipeline configs
	Env.NarrationMode = getEnvWithDefault("NARRATION_MODE", constants.NarrationModeLLM)
	Env.DefaultLLMClient = getEnvWithDefault("DEFAULT_LLM_CLIENT", constants.Groq)

	// Groq configs
	Env.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	Env.GroqModel = getEnvWithDefault("GROQ_MODEL", constants.GroqModel)
	Env.GroqBaseURL = getEnvWithDefault("GROQ_BASE_URL", constants.GroqBaseURL)

	// OpenAI configs
	Env.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	Env.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", constants.OpenAIModel)
	Env.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	Env.OpenAIMaxCompletionTokens = getIntEnvWithDefault("OPENAI_MAX_COMPLETION_TOKENS", constants.OpenAIMaxCompletionTokens)
	Env.OpenAITemperature = getFloatEnvWithDefault("OPENAI_TEMPERATURE", constants.OpenAITemperature)

	// Gemini configs
	Env.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	Env.GeminiModel = getEnvWithDefault("GEMINI_MODEL", constants.GeminiModel)
	Env.GeminiMaxCompletionTokens = getIntEnvWithDefault("GEMINI_MAX_COMPLETION_TOKENS", constants.GeminiMaxCompletionTokens)
	Env.GeminiTemperature = getFloatEnvWithDefault("GEMINI_TEMPERATURE", constants.GeminiTemperature)

	// Redis configs
	Env.RedisHost = os.Getenv("DBCONSULTOR_REDIS_HOST")
	Env.RedisPort = getEnvWithDefault("DBCONSULTOR_REDIS_PORT", "6379")
	Env.RedisUsername = os.Getenv("DBCONSULTOR_REDIS_USERNAME")
	Env.RedisPassword = os.Getenv("DBCONSULTOR_REDIS_PASSWORD")
	Env.QueryLogLimit = getIntEnvWithDefault("QUERY_LOG_LIMIT", 50)
	Env.QueryLogTTLHours = getIntEnvWithDefault("QUERY_LOG_TTL_HOURS", 24*7)

	return validateConfig()
}

// Helper functions to get environment variables with defaults
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strValue)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %v\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func validateConfig() error {
	if !constants.IsSupportedLLMProvider(Env.DefaultLLMClient) {
		return fmt.Errorf("unsupported DEFAULT_LLM_CLIENT: %s", Env.DefaultLLMClient)
	}

	if Env.NarrationMode != constants.NarrationModeLLM && Env.NarrationMode != constants.NarrationModeLocal {
		return fmt.Errorf("NARRATION_MODE must be %q or %q, got: %q", constants.NarrationModeLLM, constants.NarrationModeLocal, Env.NarrationMode)
	}

	if Env.SchemaSampleRows < 0 {
		return fmt.Errorf("SCHEMA_SAMPLE_ROWS must not be negative, got: %d", Env.SchemaSampleRows)
	}

	if Env.QueryLogLimit <= 0 {
		return fmt.Errorf("QUERY_LOG_LIMIT must be positive, got: %d", Env.QueryLogLimit)
	}

	if Env.MySQLURI == "" && Env.PostgresURI == "" {
		fmt.Println("Warning: neither MYSQL_URI nor POSTGRES_URI is set, every query will be refused")
	}

	return nil
}
