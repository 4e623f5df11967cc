package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/runpace/runpace-backend-go/internal/service"
	"github.com/runpace/runpace-backend-go/pkg/response"
)

// EnrichHandler handles HTTP requests for the enrichment pipeline
type EnrichHandler struct {
	enrichService *service.EnrichService
}

// NewEnrichHandler creates a new enrich handler
func NewEnrichHandler(enrichService *service.EnrichService) *EnrichHandler {
	return &EnrichHandler{
		enrichService: enrichService,
	}
}

// EnrichBatchRequest is the request body for a batch enrichment run
type EnrichBatchRequest struct {
	StartDate string `json:"startDate"` // Format: 2006-01-02, empty = no lower bound
	EndDate   string `json:"endDate"`   // Format: 2006-01-02, empty = no upper bound
	DryRun    bool   `json:"dryRun"`
}

// EnrichActivity handles POST /api/v1/enrich/activities/:id
func (h *EnrichHandler) EnrichActivity(c *gin.Context) {
	// Parse ID
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	summary, err := h.enrichService.EnrichActivity(id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.NotFound(c, "Activity not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// EnrichBatch handles POST /api/v1/enrich/batch
func (h *EnrichHandler) EnrichBatch(c *gin.Context) {
	var req EnrichBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.enrichService.EnrichBatch(req.StartDate, req.EndDate, req.DryRun)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, report)
}
