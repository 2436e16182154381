package routes

import (
	"dbconsultor-ai/internal/di"
	"log"

	"github.com/gin-gonic/gin"
)

func SetupConsultRoutes(router *gin.Engine) {
	consultHandler, err := di.GetConsultHandler()
	if err != nil {
		log.Fatalf("Failed to get consult handler: %v", err)
	}
	backendHandler, err := di.GetBackendHandler()
	if err != nil {
		log.Fatalf("Failed to get backend handler: %v", err)
	}

	api := router.Group("/api")
	{
		api.GET("/backends", backendHandler.List)
		api.GET("/backends/:backend/tables", backendHandler.Tables)

		api.POST("/query", consultHandler.Query)
		api.GET("/queries/recent", consultHandler.RecentQueries)
	}
}
