package di

import (
	"dbconsultor-ai/config"
	"dbconsultor-ai/internal/apis/handlers"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/internal/repositories"
	"dbconsultor-ai/internal/services"
	"dbconsultor-ai/pkg/dbmanager"
	"dbconsultor-ai/pkg/llm"
	"dbconsultor-ai/pkg/redis"
	"log"
	"time"

	"go.uber.org/dig"
)

var DiContainer *dig.Container

func Initialize() {
	DiContainer = dig.New()

	// Query log, optional
	if err := DiContainer.Provide(func() repositories.QueryLogRepository {
		if config.Env.RedisHost == "" {
			log.Println("Query log disabled: DBCONSULTOR_REDIS_HOST is not set")
			return repositories.NewNoopQueryLogRepository()
		}
		redisClient, err := redis.RedisClient(config.Env.RedisHost, config.Env.RedisPort, config.Env.RedisUsername, config.Env.RedisPassword, 3)
		if err != nil {
			log.Printf("Warning: query log disabled, %v", err)
			return repositories.NewNoopQueryLogRepository()
		}
		return repositories.NewQueryLogRepository(
			redis.NewRedisRepositories(redisClient),
			config.Env.QueryLogLimit,
			time.Duration(config.Env.QueryLogTTLHours)*time.Hour,
		)
	}); err != nil {
		log.Fatalf("Failed to provide query log repository: %v", err)
	}

	// Provide DB Manager
	if err := DiContainer.Provide(func() *dbmanager.Manager {
		manager := dbmanager.NewManager(dbmanager.ManagerConfig{
			URIs: map[string]string{
				constants.DatabaseTypeMySQL:      config.Env.MySQLURI,
				constants.DatabaseTypePostgreSQL: config.Env.PostgresURI,
			},
			SampleRows: config.Env.SchemaSampleRows,
		})
		// Register database drivers
		manager.RegisterDriver(constants.DatabaseTypeMySQL, dbmanager.NewMySQLDriver())
		manager.RegisterDriver(constants.DatabaseTypePostgreSQL, dbmanager.NewPostgresDriver())
		return manager
	}); err != nil {
		log.Fatalf("Failed to provide DB manager: %v", err)
	}

	// Add LLM Manager
	if err := DiContainer.Provide(func() *llm.Manager {
		manager := llm.NewManager()

		var clientConfig llm.Config
		switch config.Env.DefaultLLMClient {
		case constants.Groq:
			clientConfig = llm.Config{
				Provider: constants.Groq,
				Model:    config.Env.GroqModel,
				APIKey:   config.Env.GroqAPIKey,
				BaseURL:  config.Env.GroqBaseURL,
			}
		case constants.OpenAI:
			clientConfig = llm.Config{
				Provider:            constants.OpenAI,
				Model:               config.Env.OpenAIModel,
				APIKey:              config.Env.OpenAIAPIKey,
				BaseURL:             config.Env.OpenAIBaseURL,
				MaxCompletionTokens: config.Env.OpenAIMaxCompletionTokens,
				Temperature:         config.Env.OpenAITemperature,
			}
		case constants.Gemini:
			clientConfig = llm.Config{
				Provider:            constants.Gemini,
				Model:               config.Env.GeminiModel,
				APIKey:              config.Env.GeminiAPIKey,
				MaxCompletionTokens: config.Env.GeminiMaxCompletionTokens,
				Temperature:         config.Env.GeminiTemperature,
			}
		}

		if err := manager.RegisterClient(config.Env.DefaultLLMClient, clientConfig); err != nil {
			log.Printf("Warning: Failed to register %s client: %v", config.Env.DefaultLLMClient, err)
		}
		return manager
	}); err != nil {
		log.Fatalf("Failed to provide LLM manager: %v", err)
	}

	// Provide services
	if err := DiContainer.Provide(func(
		dbManager *dbmanager.Manager,
		llmManager *llm.Manager,
		queryLog repositories.QueryLogRepository,
	) services.ConsultService {
		// a missing key fails each question instead of the startup
		llmClient := llmManager.ClientOrUnavailable(config.Env.DefaultLLMClient)
		return services.NewConsultService(dbManager, llmClient, queryLog, services.ConsultConfig{
			NarrationMode: config.Env.NarrationMode,
		})
	}); err != nil {
		log.Fatalf("Failed to provide consult service: %v", err)
	}

	// Provide handlers
	if err := DiContainer.Provide(func(consultService services.ConsultService) *handlers.ConsultHandler {
		return handlers.NewConsultHandler(consultService)
	}); err != nil {
		log.Fatalf("Failed to provide consult handler: %v", err)
	}

	if err := DiContainer.Provide(func(consultService services.ConsultService) *handlers.BackendHandler {
		return handlers.NewBackendHandler(consultService)
	}); err != nil {
		log.Fatalf("Failed to provide backend handler: %v", err)
	}

	if err := DiContainer.Provide(func(queryLog repositories.QueryLogRepository) *handlers.HealthHandler {
		return handlers.NewHealthHandler(queryLog)
	}); err != nil {
		log.Fatalf("Failed to provide health handler: %v", err)
	}
}

// GetConsultHandler retrieves the ConsultHandler from the DI container
func GetConsultHandler() (*handlers.ConsultHandler, error) {
	var handler *handlers.ConsultHandler
	err := DiContainer.Invoke(func(h *handlers.ConsultHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetBackendHandler retrieves the BackendHandler from the DI container
func GetBackendHandler() (*handlers.BackendHandler, error) {
	var handler *handlers.BackendHandler
	err := DiContainer.Invoke(func(h *handlers.BackendHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetHealthHandler retrieves the HealthHandler from the DI container
func GetHealthHandler() (*handlers.HealthHandler, error) {
	var handler *handlers.HealthHandler
	err := DiContainer.Invoke(func(h *handlers.HealthHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// Shutdown closes the database pools opened during the process lifetime
func Shutdown() {
	if DiContainer == nil {
		return
	}
	err := DiContainer.Invoke(func(manager *dbmanager.Manager) {
		if err := manager.Close(); err != nil {
			log.Printf("Error closing database connections: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to close DB manager: %v", err)
	}
}
