package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/api/middleware"
	"universal-scraper/internal/background"
	"universal-scraper/internal/config"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// JobQueue accepts scrape runs for background processing; *background.TaskManager satisfies it
type JobQueue interface {
	SubmitScrapeTask(ctx context.Context, sessionID string, request models.ScrapeRequest) (*background.TaskResult, error)
	GetTaskResult(ctx context.Context, processID string) (*background.TaskResult, error)
}

// SubmitJobHandler validates a scrape request and queues it, answering 202 with the job
func SubmitJobHandler(cfg *config.Config, jobs JobQueue) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := requestLogger(c)

		var req models.ScrapeRequest
		if err := c.Bind(&req); err != nil {
			return errorResponse(c, utils.NewBadRequestError("Invalid request format"))
		}

		if err := prepareRequest(cfg, &req); err != nil {
			logger.Warn("Job validation failed", map[string]interface{}{
				"error": err.Error(),
			})
			return errorResponse(c, err)
		}

		job, err := jobs.SubmitScrapeTask(c.Request().Context(), middleware.GetSessionID(c), req)
		switch {
		case errors.Is(err, background.ErrQueueFull), errors.Is(err, background.ErrNotRunning):
			logger.Warn("Job rejected", map[string]interface{}{
				"error": err.Error(),
			})
			return errorResponse(c, utils.NewUnavailableError(err))
		case err != nil:
			return errorResponse(c, err)
		}

		logger.Info("Job accepted", map[string]interface{}{
			"process_id": job.ProcessID,
		})
		return c.JSON(http.StatusAccepted, job)
	}
}

// JobStatusHandler returns a job owned by the caller's session
func JobStatusHandler(jobs JobQueue) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := jobs.GetTaskResult(c.Request().Context(), c.Param("id"))
		if errors.Is(err, background.ErrTaskNotFound) || (err == nil && job.SessionID != middleware.GetSessionID(c)) {
			return errorResponse(c, utils.NewNotFoundError("Job not found"))
		}
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(http.StatusOK, job)
	}
}
