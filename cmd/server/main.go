package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/api/render"
	"universal-scraper/internal/api/routes"
	"universal-scraper/internal/background"
	"universal-scraper/internal/config"
	"universal-scraper/internal/llm"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/pipeline"
	"universal-scraper/internal/scraper"
	"universal-scraper/internal/session"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Universal Web Scraper", map[string]interface{}{
		"engine":        cfg.Scraper.Engine,
		"llm_provider":  cfg.LLM.Provider,
		"session_store": cfg.Session.Store,
	})

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}

	// Initialize session store
	store, err := session.NewStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create session store", map[string]interface{}{"error": err.Error()})
	}
	defer store.Close()

	// Initialize page fetcher
	fetcher, err := scraper.NewFetcherFactory(cfg).CreateFetcher(cfg.Scraper.Engine)
	if err != nil {
		logger.Fatal("Failed to create page fetcher", map[string]interface{}{"error": err.Error()})
	}

	runner := pipeline.New(fetcher, llmManager, logger)

	// Initialize background jobs
	taskManager := background.NewTaskManager(cfg, runner, store, logger)
	if err := taskManager.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{"error": err.Error()})
	}

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		logger.Fatal("Failed to load templates", map[string]interface{}{"error": err.Error()})
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Setup routes
	routes.SetupRoutes(e, cfg, runner, store, llmManager, taskManager)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping task manager...")
		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping LLM manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
