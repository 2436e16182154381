package handlers

import (
	"context"
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/repositories"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	queryLogDisabled    = "disabled"
	queryLogOK          = "ok"
	queryLogUnavailable = "unavailable"
)

type HealthHandler struct {
	queryLog repositories.QueryLogRepository
}

func NewHealthHandler(queryLog repositories.QueryLogRepository) *HealthHandler {
	return &HealthHandler{
		queryLog: queryLog,
	}
}

// @Summary Health check
// @Description Report that the server is up and whether the optional query log store answers
// @Produce json

func (h *HealthHandler) Check(c *gin.Context) {
	response := dtos.HealthResponse{Status: "Server is healthy!", QueryLog: queryLogDisabled}

	if h.queryLog.Enabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.queryLog.Ping(ctx); err != nil {
			log.Printf("HealthHandler -> Check -> query log unreachable: %v", err)
			response.QueryLog = queryLogUnavailable
		} else {
			response.QueryLog = queryLogOK
		}
	}

	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    response,
	})
}
