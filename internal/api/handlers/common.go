package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/api/middleware"
	"universal-scraper/internal/api/validation"
	"universal-scraper/internal/config"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/pipeline"
	"universal-scraper/internal/session"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

var validate = validation.New()

// ScrapeRunner runs one scrape; *pipeline.Pipeline satisfies it
type ScrapeRunner interface {
	Run(ctx context.Context, req *models.ScrapeRequest) (*pipeline.Result, error)
}

// LLMStatus is what readiness needs to know about the model provider
type LLMStatus interface {
	IsHealthy() bool
	GetProviderName() string
}

func requestLogger(c echo.Context) types.Logger {
	return logging.LogWithRequestID(middleware.GetRequestID(c)).WithField("session_id", middleware.GetSessionID(c))
}

// errorResponse writes err as an ErrorResponse, using the status a CustomError carries
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	kind := "internal_error"
	message := err.Error()

	if customErr, ok := utils.AsCustomError(err); ok {
		status = customErr.Code
		kind = customErr.Kind
		message = customErr.Error()
	} else if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		kind = "timeout"
	}

	return c.JSON(status, models.ErrorResponse{
		Error:     kind,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
		Timestamp: time.Now(),
	})
}

// prepareRequest normalizes the field list, fills defaults and validates
func prepareRequest(cfg *config.Config, req *models.ScrapeRequest) error {
	req.Fields = models.ParseFieldList(req.Fields...)
	req.ApplyDefaults(cfg.Chunking.DefaultSize, cfg.Chunking.DefaultOverlap, cfg.LLM.Model)

	if err := validate.Struct(req); err != nil {
		return utils.NewValidationError(err.Error())
	}
	return nil
}

// runAndStore executes the scrape and replaces the session's stored result
func runAndStore(c echo.Context, runner ScrapeRunner, store session.Store, req *models.ScrapeRequest) (*pipeline.Result, error) {
	logger := requestLogger(c)
	ctx := c.Request().Context()

	result, err := runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := store.Put(ctx, middleware.GetSessionID(c), result.Extraction); err != nil {
		logger.Error("Failed to store session result", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, utils.NewInternalServerError("Failed to store scrape result")
	}

	return result, nil
}

// loadResult returns the session's result, or a no_data error when there is nothing to show
func loadResult(c echo.Context, store session.Store) (*models.ExtractionResult, error) {
	result, err := store.Get(c.Request().Context(), middleware.GetSessionID(c))
	if errors.Is(err, session.ErrNotFound) {
		return nil, utils.NewNoDataError()
	}
	if err != nil {
		return nil, err
	}
	if !result.HasData() {
		return nil, utils.NewNoDataError()
	}
	return result, nil
}
