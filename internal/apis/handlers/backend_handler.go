package handlers

import (
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/services"

	"github.com/gin-gonic/gin"
)

type BackendHandler struct {
	consultService services.ConsultService
}

func NewBackendHandler(consultService services.ConsultService) *BackendHandler {
	return &BackendHandler{
		consultService: consultService,
	}
}

// @Summary List backends
// @Description List the supported backends and whether they are configured
// @Produce json

func (h *BackendHandler) List(c *gin.Context) {
	response, statusCode, err := h.consultService.ListBackends(c.Request.Context())
	if err != nil {
		errorMsg := err.Error()
		c.JSON(int(statusCode), dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	c.JSON(int(statusCode), dtos.Response{
		Success: true,
		Data:    response,
	})
}

// @Summary List tables
// @Description List the tables of a backend, connecting on first use
// @Produce json
// @Param backend path string true "Backend name"

func (h *BackendHandler) Tables(c *gin.Context) {
	response, statusCode, err := h.consultService.ListTables(c.Request.Context(), c.Param("backend"))
	if err != nil {
		errorMsg := err.Error()
		c.JSON(int(statusCode), dtos.Response{
			Success: false,
			Error:   &errorMsg,
			Data:    response,
		})
		return
	}

	c.JSON(int(statusCode), dtos.Response{
		Success: true,
		Data:    response,
	})
}
