package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/api/middleware"
	"universal-scraper/internal/config"
	"universal-scraper/internal/session"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// ScrapeHandler handles JSON scrape requests and returns the extracted records
func ScrapeHandler(cfg *config.Config, runner ScrapeRunner, store session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := requestLogger(c)
		logger.Info("Scrape request received")

		var req models.ScrapeRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind request", map[string]interface{}{
				"error": err.Error(),
			})
			return errorResponse(c, utils.NewBadRequestError("Invalid request format"))
		}

		if err := prepareRequest(cfg, &req); err != nil {
			logger.Warn("Request validation failed", map[string]interface{}{
				"error": err.Error(),
			})
			return errorResponse(c, err)
		}

		result, err := runAndStore(c, runner, store, &req)
		if err != nil {
			return errorResponse(c, err)
		}

		extraction := result.Extraction
		return c.JSON(http.StatusOK, models.ScrapeResponse{
			Success:        true,
			Records:        extraction.Records,
			RecordCount:    len(extraction.Records),
			ChunkCount:     extraction.ChunkCount,
			ImageCount:     extraction.ImageCount,
			SkippedChunks:  extraction.SkippedChunks,
			ProcessingTime: result.ProcessingTime,
			RequestID:      middleware.GetRequestID(c),
			SessionID:      middleware.GetSessionID(c),
		})
	}
}

// ResultsHandler returns the records stored for the caller's session
func ResultsHandler(store session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := loadResult(c, store)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(http.StatusOK, models.ResultsResponse{
			Records:     result.Records,
			RecordCount: len(result.Records),
			SessionID:   middleware.GetSessionID(c),
		})
	}
}
