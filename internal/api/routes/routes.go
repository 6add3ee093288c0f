package routes

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"universal-scraper/internal/api/handlers"
	"universal-scraper/internal/api/middleware"
	"universal-scraper/internal/config"
	"universal-scraper/internal/session"
)

// SetupRoutes configures the front page, the JSON API, downloads and health probes.
// Job routes are mounted only when jobs is non-nil.
func SetupRoutes(e *echo.Echo, cfg *config.Config, runner handlers.ScrapeRunner, store session.Store, llmStatus handlers.LLMStatus, jobs handlers.JobQueue) {
	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestID())

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(llmStatus, store))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Everything below is keyed by the visitor's session
	app := e.Group("", middleware.Session(cfg.Session.CookieName, cfg.Session.TTL))
	{
		app.GET("/", handlers.IndexHandler(cfg, store))
		app.POST("/scrape", handlers.FormScrapeHandler(cfg, runner, store), middleware.ScrapeTimeout(cfg.Server.WriteTimeout))
		app.GET("/download/:format", handlers.DownloadHandler(store))
	}

	// API v1 routes
	v1 := app.Group("/api/v1")
	{
		v1.POST("/scrape", handlers.ScrapeHandler(cfg, runner, store), middleware.ScrapeTimeout(cfg.Server.WriteTimeout))
		v1.GET("/results", handlers.ResultsHandler(store))

		if jobs != nil {
			v1.POST("/jobs", handlers.SubmitJobHandler(cfg, jobs))
			v1.GET("/jobs/:id", handlers.JobStatusHandler(jobs))
		}
	}
}
