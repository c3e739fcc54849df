package main

import (
	"fmt"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/api/entries"
	"ai-vocab-coach/internal/api/healthcheck"
	"ai-vocab-coach/internal/api/roleplay"
	"ai-vocab-coach/internal/api/speech"
	"ai-vocab-coach/internal/core/audio"
	"ai-vocab-coach/internal/core/images"
	"ai-vocab-coach/internal/core/notebook"
	"ai-vocab-coach/internal/core/resolver"
	"ai-vocab-coach/internal/core/scenario"
	"ai-vocab-coach/internal/database"
	"ai-vocab-coach/internal/middleware"
	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		AppName:   config.Cfg.Server.AppName,
		BodyLimit: config.Cfg.Server.BodyLimit,
	})

	app.Use(middleware.PanicRecovery())
	app.Use(middleware.ConnectionLimit(middleware.NewConnectionLimiter(config.Cfg.Server.Concurrency)))
	if len(config.Cfg.Cors.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: config.Cfg.Cors.AllowOrigins,
			AllowMethods: config.Cfg.Cors.AllowMethods,
			AllowHeaders: config.Cfg.Cors.AllowHeaders,
		}))
	}

	// Notebook falls back to memory when the database is unreachable, so a
	// missing MySQL degrades persistence, not the whole service.
	var store notebook.Store
	if _, err := database.GetDB(); err != nil {
		logger.Error(err, "database unavailable, notebook is in-memory for this run")
		store = notebook.NewMemoryStore()
	} else {
		store = notebook.NewGormStore()
	}

	oracleClient := oracle.NewClient()
	imageStore := images.NewFromConfig()

	entryResolver := resolver.New(oracleClient, store, imageStore)
	session := scenario.NewSession(oracleClient, config.Cfg.Learner.SourceLang, config.Cfg.Learner.TargetLang)
	pipeline := audio.NewPipeline(oracleClient, audio.NewOtoDevice(config.Cfg.Audio.SampleRate))

	// routes
	healthcheck.RegisterRoutes(app)
	entries.RegisterRoutes(app, entries.NewHandler(entryResolver, store))
	roleplay.RegisterRoutes(app, roleplay.NewHandler(session))
	speech.RegisterRoutes(app, speech.NewHandler(pipeline))

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "server error")
	}
}
