package constants

const (
	Groq   = "groq"
	OpenAI = "openai"
	Gemini = "gemini"
)

const (
	GroqBaseURL = "https://api.groq.com/openai/v1"
	GroqModel   = "llama3-8b-8192"

	OpenAIModel               = "gpt-4o"
	OpenAIMaxCompletionTokens = 4096
	OpenAITemperature         = 0.0

	GeminiModel               = "gemini-1.5-flash"
	GeminiMaxCompletionTokens = 4096
	GeminiTemperature         = 0.0
)

// Purposes of an LLM round trip, used as a metrics label.
const (
	LLMPurposeSQLGeneration    = "sql_generation"
	LLMPurposeResultFormatting = "result_formatting"
)

const (
	NarrationModeLLM   = "llm"
	NarrationModeLocal = "local"
)

func IsSupportedLLMProvider(provider string) bool {
	switch provider {
	case Groq, OpenAI, Gemini:
		return true
	}
	return false
}
