package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/exporter"
	"universal-scraper/internal/session"
	"universal-scraper/pkg/utils"
)

// DownloadHandler serves the session's records as a JSON, CSV or XLSX attachment
func DownloadHandler(store session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		format, err := exporter.ParseFormat(c.Param("format"))
		if err != nil {
			return errorResponse(c, utils.NewBadRequestError(fmt.Sprintf("Unsupported download format %q", c.Param("format"))))
		}

		result, err := loadResult(c, store)
		if err != nil {
			return errorResponse(c, err)
		}

		artifact, err := exporter.Export(format, result.Records)
		if err != nil {
			requestLogger(c).Error("Export failed", map[string]interface{}{
				"format": string(format),
				"error":  err.Error(),
			})
			message := "Failed to export results"
			if errors.Is(err, exporter.ErrSpreadsheet) {
				message = "Failed to build spreadsheet"
			}
			return errorResponse(c, utils.NewInternalServerError(message))
		}

		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		return c.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
	}
}
