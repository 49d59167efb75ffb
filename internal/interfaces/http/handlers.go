package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/lodging-sap/internal/application/service"
	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/repository"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	runService service.RunService
	logger     Logger
	// runCtx is the parent of background runs; request contexts end with the response
	runCtx context.Context
}

// NewHandlers creates a new Handlers instance
func NewHandlers(runService service.RunService, logger Logger) *Handlers {
	return &Handlers{
		runService: runService,
		logger:     logger,
		runCtx:     context.Background(),
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListRunsRequest represents query parameters for listing runs
type ListRunsRequest struct {
	Limit int `form:"limit"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// StartRun handles POST /api/runs/:flow.
// The run continues in the background; poll GET /api/runs/:id for the outcome.
func (h *Handlers) StartRun(c *gin.Context) {
	var req service.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid run request", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}
	req.Flow = entity.Flow(c.Param("flow"))

	run, err := h.runService.Start(h.runCtx, req)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, Response{Success: true, Data: run})
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Failed to start run", "flow", req.Flow.String(), "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to start run"})
	}
}

// ListRuns handles GET /api/runs
func (h *Handlers) ListRuns(c *gin.Context) {
	var req ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	runs, err := h.runService.List(req.Limit)
	if err != nil {
		h.logger.Error("Failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to list runs",
		})
		return
	}
	if runs == nil {
		runs = []*entity.RunSummary{}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: runs})
}

// GetRun handles GET /api/runs/:id
func (h *Handlers) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := h.runService.Get(id)
	if errors.Is(err, repository.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "run not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get run", "run_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get run",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: run})
}
