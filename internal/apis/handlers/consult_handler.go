package handlers

import (
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConsultHandler struct {
	consultService services.ConsultService
}

func NewConsultHandler(consultService services.ConsultService) *ConsultHandler {
	return &ConsultHandler{
		consultService: consultService,
	}
}

// @Summary Ask a question about a database
// @Description Generate SQL for the question, run it and describe the result
// @Accept json
// @Produce json
// @Param consultRequest body dtos.ConsultRequest true "Consult request"
// @Success 200 {object} dtos.Response

func (h *ConsultHandler) Query(c *gin.Context) {
	var req dtos.ConsultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusBadRequest, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	response, statusCode, err := h.consultService.HandleQuery(c.Request.Context(), &req)
	if err != nil {
		// the partial response still tells the UI which stage failed
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

// @Summary Recent queries
// @Description List the most recent consultations, newest first
// @Produce json
// @Param limit query int false "Number of entries" default(20)

func (h *ConsultHandler) RecentQueries(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		errorMsg := "limit must be a positive integer"
		c.JSON(http.StatusBadRequest, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	response, statusCode, err := h.consultService.RecentQueries(c.Request.Context(), limit)
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
