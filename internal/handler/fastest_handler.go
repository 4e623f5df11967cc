package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/runpace/runpace-backend-go/internal/analysis/fastest"
	"github.com/runpace/runpace-backend-go/pkg/response"
)

// FastestHandler handles HTTP requests for fastest-effort rankings
type FastestHandler struct {
	finder *fastest.Finder
}

// NewFastestHandler creates a new fastest handler
func NewFastestHandler(finder *fastest.Finder) *FastestHandler {
	return &FastestHandler{
		finder: finder,
	}
}

// GetFastest handles GET /api/v1/fastest
func (h *FastestHandler) GetFastest(c *gin.Context) {
	// Parse target distance
	distStr := c.Query("distanceM")
	distanceM, err := strconv.ParseFloat(distStr, 64)
	if err != nil || distanceM <= 0 {
		response.BadRequest(c, "Invalid distanceM parameter")
		return
	}

	// Parse result count
	topStr := c.DefaultQuery("topN", "10")
	topN, err := strconv.Atoi(topStr)
	if err != nil {
		response.BadRequest(c, "Invalid topN parameter")
		return
	}

	results, err := h.finder.Find(distanceM, topN)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  results,
		"count": len(results),
	})
}
