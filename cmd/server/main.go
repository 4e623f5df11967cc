package main

import (
	"log"

	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/runpace/runpace-backend-go/internal/analysis/fastest"
	"github.com/runpace/runpace-backend-go/internal/api"
	"github.com/runpace/runpace-backend-go/internal/config"
	"github.com/runpace/runpace-backend-go/internal/database"
	"github.com/runpace/runpace-backend-go/internal/handler"
	"github.com/runpace/runpace-backend-go/internal/repository"
	"github.com/runpace/runpace-backend-go/internal/service"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Rotate logs when a log file is configured; default is stderr
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     60, // days
			Compress:   true,
		})
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema: ", err)
	}
	if err := database.NewMigrationManager(db, cfg.MigrationsPath).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Repositories
	activityRepo := repository.NewActivityRepository(db)
	intervalRepo := repository.NewIntervalRepository(db)
	streamRepo := repository.NewStreamRepository(db)
	vdotRepo := repository.NewVDOTRepository(db)
	trackRepo := repository.NewDetectedTrackRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	activityService := service.NewActivityService(activityRepo, intervalRepo, streamRepo)
	vdotService := service.NewVDOTService(vdotRepo)
	enrichService := service.NewEnrichService(db, cfg, activityRepo, intervalRepo, streamRepo, vdotRepo, trackRepo)
	statsService := service.NewStatsService(statsRepo)

	// Handlers
	handlers := api.Handlers{
		Activity: handler.NewActivityHandler(activityService),
		Enrich:   handler.NewEnrichHandler(enrichService),
		VDOT:     handler.NewVDOTHandler(vdotService),
		Fastest:  handler.NewFastestHandler(fastest.NewFinder(db)),
		Stats:    handler.NewStatsHandler(statsService),
	}

	router := api.SetupRouter(cfg, handlers)

	log.Printf("[Server] Listening on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
