package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/runpace/runpace-backend-go/internal/service"
	"github.com/runpace/runpace-backend-go/pkg/response"
)

// StatsHandler handles HTTP requests for training statistics
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetSummary handles GET /api/v1/stats/summary
func (h *StatsHandler) GetSummary(c *gin.Context) {
	// Parse year, defaulting to the current one
	yearStr := c.DefaultQuery("year", strconv.Itoa(time.Now().Year()))
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		response.BadRequest(c, "Invalid year parameter")
		return
	}

	summary, err := h.statsService.GetYearSummary(year)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// GetWeekly handles GET /api/v1/stats/weekly
func (h *StatsHandler) GetWeekly(c *gin.Context) {
	// Default to the prior six months
	today := time.Now()
	startDate := c.DefaultQuery("startDate", today.AddDate(0, 0, -180).Format("2006-01-02"))
	endDate := c.DefaultQuery("endDate", today.Format("2006-01-02"))

	weeks, err := h.statsService.GetWeeklyMileage(startDate, endDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  weeks,
		"count": len(weeks),
	})
}

// GetTrailing handles GET /api/v1/stats/trailing
func (h *StatsHandler) GetTrailing(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		response.BadRequest(c, "startDate and endDate are required")
		return
	}

	trailing, err := h.statsService.GetTrailingMileage(startDate, endDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, trailing)
}
