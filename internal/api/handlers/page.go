package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"universal-scraper/internal/config"
	"universal-scraper/internal/exporter"
	"universal-scraper/internal/session"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// IndexTemplate is the name of the front page template
const IndexTemplate = "index.html"

// FormValues echoes the sidebar inputs back into the page
type FormValues struct {
	URL          string
	Fields       string
	ChunkSize    int
	ChunkOverlap int
	Model        string
}

// PageData feeds the front page template
type PageData struct {
	Models      []string
	Form        FormValues
	HasData     bool
	Notice      string
	Error       string
	SourceURL   string
	RecordCount int
	Columns     []string
	Rows        [][]string
}

func newPageData(cfg *config.Config) PageData {
	return PageData{
		Models: []string{cfg.LLM.Model},
		Form: FormValues{
			ChunkSize:    cfg.Chunking.DefaultSize,
			ChunkOverlap: cfg.Chunking.DefaultOverlap,
			Model:        cfg.LLM.Model,
		},
		Notice: utils.NoDataNotice,
	}
}

func (p *PageData) fill(result *models.ExtractionResult) {
	if !result.HasData() {
		return
	}

	p.HasData = true
	p.SourceURL = result.URL
	p.RecordCount = len(result.Records)
	p.Columns = exporter.Columns(result.Records)
	p.Rows = make([][]string, 0, len(result.Records))
	for _, record := range result.Records {
		row := make([]string, len(p.Columns))
		for i, column := range p.Columns {
			row[i] = record.Text(column)
		}
		p.Rows = append(p.Rows, row)
	}

	p.Form.URL = result.URL
	p.Form.Fields = strings.Join(result.Fields, ", ")
}

// IndexHandler renders the form and, when the session has data, the result table
func IndexHandler(cfg *config.Config, store session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := newPageData(cfg)

		result, err := loadResult(c, store)
		if err == nil {
			data.fill(result)
		} else if customErr, ok := utils.AsCustomError(err); !ok || customErr.Kind != "no_data" {
			requestLogger(c).Error("Failed to load session result", map[string]interface{}{
				"error": err.Error(),
			})
			data.Error = "Stored results could not be loaded."
		}

		return c.Render(http.StatusOK, IndexTemplate, data)
	}
}

// FormScrapeHandler runs a scrape from the sidebar form and redirects back to
// the front page. Nothing runs unless both a URL and at least one field are given.
func FormScrapeHandler(cfg *config.Config, runner ScrapeRunner, store session.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := requestLogger(c)

		req := models.ScrapeRequest{
			URL:    strings.TrimSpace(c.FormValue("url")),
			Fields: []string{c.FormValue("fields")},
			Model:  c.FormValue("model"),
		}
		req.ChunkSize, _ = strconv.Atoi(c.FormValue("chunk_size"))
		req.ChunkOverlap, _ = strconv.Atoi(c.FormValue("chunk_overlap"))

		if req.URL == "" || len(models.ParseFieldList(req.Fields...)) == 0 {
			return c.Redirect(http.StatusSeeOther, "/")
		}

		formValues := FormValues{
			URL:          req.URL,
			Fields:       c.FormValue("fields"),
			ChunkSize:    req.ChunkSize,
			ChunkOverlap: req.ChunkOverlap,
			Model:        req.Model,
		}

		if err := prepareRequest(cfg, &req); err != nil {
			return renderFailure(c, cfg, formValues, err)
		}

		logger.Info("Form scrape submitted", map[string]interface{}{
			"url":    req.URL,
			"fields": req.Fields,
		})

		if _, err := runAndStore(c, runner, store, &req); err != nil {
			logger.Error("Form scrape failed", map[string]interface{}{
				"error": err.Error(),
			})
			return renderFailure(c, cfg, formValues, err)
		}

		return c.Redirect(http.StatusSeeOther, "/")
	}
}

// renderFailure shows the form again with the error, keeping the user's input
func renderFailure(c echo.Context, cfg *config.Config, form FormValues, err error) error {
	data := newPageData(cfg)
	data.Form = form

	status := http.StatusInternalServerError
	if customErr, ok := utils.AsCustomError(err); ok {
		status = customErr.Code
	} else if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	data.Error = err.Error()

	return c.Render(status, IndexTemplate, data)
}
