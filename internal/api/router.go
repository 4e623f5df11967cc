package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/runpace/runpace-backend-go/internal/config"
	"github.com/runpace/runpace-backend-go/internal/handler"
	"github.com/runpace/runpace-backend-go/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Activity *handler.ActivityHandler
	Enrich   *handler.EnrichHandler
	VDOT     *handler.VDOTHandler
	Fastest  *handler.FastestHandler
	Stats    *handler.StatsHandler
}

// SetupRouter builds the gin engine with all routes and middleware
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "RunPace API is running",
		})
	})

	// Read-only API routes
	api := r.Group("/api/v1")
	{
		activities := api.Group("/activities")
		{
			activities.GET("", h.Activity.GetActivities)
			activities.GET("/:id", h.Activity.GetActivityByID)
			activities.GET("/:id/streams", h.Activity.GetActivityStreams)
		}

		api.GET("/locations", h.Activity.GetWorkoutLocations)
		api.GET("/fastest", h.Fastest.GetFastest)

		zones := api.Group("/zones")
		{
			zones.GET("", h.VDOT.GetZones)
			zones.GET("/predict", h.VDOT.PredictRace)
		}

		api.GET("/vdot/history", h.VDOT.GetHistory)

		stats := api.Group("/stats")
		{
			stats.GET("/summary", h.Stats.GetSummary)
			stats.GET("/weekly", h.Stats.GetWeekly)
			stats.GET("/trailing", h.Stats.GetTrailing)
		}
	}

	// Mutating routes require a bearer token
	protected := r.Group("/api/v1", middleware.Auth(cfg.JWTSecret), middleware.RateLimit(60, time.Minute))
	{
		protected.POST("/vdot", h.VDOT.AddEntry)
		protected.POST("/vdot/race", h.VDOT.RecordRace)

		enrich := protected.Group("/enrich")
		{
			enrich.POST("/activities/:id", h.Enrich.EnrichActivity)
			enrich.POST("/batch", h.Enrich.EnrichBatch)
		}
	}

	return r
}
