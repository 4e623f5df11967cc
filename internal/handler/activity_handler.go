package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/service"
	"github.com/runpace/runpace-backend-go/pkg/response"
)

// ActivityHandler handles HTTP requests for activities
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetActivities handles GET /api/v1/activities
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	var filter models.ActivityFilter

	// Parse query parameters
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.activityService.GetActivities(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetActivityByID handles GET /api/v1/activities/:id
func (h *ActivityHandler) GetActivityByID(c *gin.Context) {
	// Parse ID
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	detail, err := h.activityService.GetActivityDetail(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if detail == nil {
		response.NotFound(c, "Activity not found")
		return
	}

	response.Success(c, detail)
}

// GetActivityStreams handles GET /api/v1/activities/:id/streams
func (h *ActivityHandler) GetActivityStreams(c *gin.Context) {
	// Parse ID
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	streams, err := h.activityService.GetActivityStreams(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if streams == nil {
		response.NotFound(c, "Activity not found")
		return
	}

	response.Success(c, gin.H{
		"data":  streams,
		"count": len(streams),
	})
}

// GetWorkoutLocations handles GET /api/v1/locations
func (h *ActivityHandler) GetWorkoutLocations(c *gin.Context) {
	// Parse cluster radius
	radiusStr := c.DefaultQuery("radiusM", "500")
	radiusM, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil || radiusM < 0 {
		response.BadRequest(c, "Invalid radiusM parameter")
		return
	}

	// Parse minimum interval count
	minStr := c.DefaultQuery("minIntervals", "3")
	minIntervals, err := strconv.Atoi(minStr)
	if err != nil || minIntervals < 0 {
		response.BadRequest(c, "Invalid minIntervals parameter")
		return
	}

	locations, err := h.activityService.GetWorkoutLocations(radiusM, minIntervals)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  locations,
		"count": len(locations),
	})
}
