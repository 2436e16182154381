package routes

import (
	"dbconsultor-ai/internal/apis/ui"
	"dbconsultor-ai/internal/di"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupDefaultRoutes(router *gin.Engine) {
	// Single page client
	router.GET("/", ui.Index)

	// Health check route
	healthHandler, err := di.GetHealthHandler()
	if err != nil {
		log.Fatalf("Failed to get health handler: %v", err)
	}
	router.GET("/health", healthHandler.Check)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup all route groups
	SetupConsultRoutes(router)
}
