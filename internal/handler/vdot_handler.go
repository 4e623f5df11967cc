package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/service"
	"github.com/runpace/runpace-backend-go/pkg/response"
)

// VDOTHandler handles HTTP requests for fitness history and training zones
type VDOTHandler struct {
	vdotService *service.VDOTService
}

// NewVDOTHandler creates a new vdot handler
func NewVDOTHandler(vdotService *service.VDOTService) *VDOTHandler {
	return &VDOTHandler{
		vdotService: vdotService,
	}
}

// AddVDOTRequest is the request body for a manual VDOT entry
type AddVDOTRequest struct {
	EffectiveDate string  `json:"effectiveDate" binding:"required"` // Format: 2006-01-02
	VDOT          float64 `json:"vdot" binding:"required"`
	Notes         *string `json:"notes"`
}

// RecordRaceRequest is the request body for deriving VDOT from a race result
type RecordRaceRequest struct {
	DistanceM  float64 `json:"distanceM" binding:"required"`
	TimeS      float64 `json:"timeS" binding:"required"`
	Date       string  `json:"date" binding:"required"` // Format: 2006-01-02
	ActivityID *int64  `json:"activityId"`
	Notes      *string `json:"notes"`
}

// GetZones handles GET /api/v1/zones
func (h *VDOTHandler) GetZones(c *gin.Context) {
	date := c.Query("date")

	zones, err := h.vdotService.GetZones(date)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if zones == nil {
		response.NotFound(c, "No VDOT entry in effect on this date")
		return
	}

	response.Success(c, zones)
}

// GetHistory handles GET /api/v1/vdot/history
func (h *VDOTHandler) GetHistory(c *gin.Context) {
	history, err := h.vdotService.GetHistory()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  history,
		"count": len(history),
	})
}

// AddEntry handles POST /api/v1/vdot
func (h *VDOTHandler) AddEntry(c *gin.Context) {
	var req AddVDOTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry := &models.VDOTEntry{
		EffectiveDate: req.EffectiveDate,
		VDOT:          req.VDOT,
		Notes:         req.Notes,
	}
	if err := h.vdotService.AddEntry(entry); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, entry)
}

// RecordRace handles POST /api/v1/vdot/race
func (h *VDOTHandler) RecordRace(c *gin.Context) {
	var req RecordRaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.vdotService.RecordRace(req.DistanceM, req.TimeS, req.Date, req.ActivityID, req.Notes)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, entry)
}

// PredictRace handles GET /api/v1/zones/predict
func (h *VDOTHandler) PredictRace(c *gin.Context) {
	// Parse target distance
	distStr := c.Query("distanceM")
	distanceM, err := strconv.ParseFloat(distStr, 64)
	if err != nil || distanceM <= 0 {
		response.BadRequest(c, "Invalid distanceM parameter")
		return
	}

	prediction, err := h.vdotService.PredictRace(distanceM, c.Query("date"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if prediction == nil {
		response.NotFound(c, "No VDOT entry in effect on this date")
		return
	}

	response.Success(c, prediction)
}
