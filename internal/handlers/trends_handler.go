package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/reports"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/trends"
	"github.com/gofiber/fiber/v2"
)

type TrendsHandler struct {
	analyzer      *trends.Analyzer
	source        trends.FactSource
	exportService *export.Service
	runs          *reports.RunLog
}

func NewTrendsHandler(analyzer *trends.Analyzer, source trends.FactSource, exportService *export.Service, runs *reports.RunLog) *TrendsHandler {
	return &TrendsHandler{
		analyzer:      analyzer,
		source:        source,
		exportService: exportService,
		runs:          runs,
	}
}

// AnalyzeRequestBody is the HTTP form of an analysis request. Start and End
// are optional YYYY-MM-DD dates; both unset means the full available range.
type AnalyzeRequestBody struct {
	trends.RequestParams
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (b *AnalyzeRequestBody) options() (trends.AnalyzeOptions, error) {
	var opts trends.AnalyzeOptions

	if b.StartDate != "" {
		start, err := time.Parse("2006-01-02", b.StartDate)
		if err != nil {
			return opts, fmt.Errorf("invalid start_date: %w", err)
		}
		opts.Start = &start
	}
	if b.EndDate != "" {
		end, err := time.Parse("2006-01-02", b.EndDate)
		if err != nil {
			return opts, fmt.Errorf("invalid end_date: %w", err)
		}
		opts.End = &end
	}

	if opts.Start != nil && opts.End != nil && opts.End.Before(*opts.Start) {
		return opts, fmt.Errorf("start_date must not be after end_date")
	}

	return opts, nil
}

// Analyze godoc
// @Summary Run a sales trend analysis
// @Description Aggregates the sales fact table into periodic buckets and computes trend statistics for the requested metric
// @Tags Trends
// @Accept json
// @Produce json
// @Param request body AnalyzeRequestBody true "Analysis request"
// @Success 200 {object} trends.Result
// @Failure 400 {object} map[string]interface{}
// @Router /trends/analyze [post]
func (h *TrendsHandler) Analyze(c *fiber.Ctx) error {
	var body AnalyzeRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req, err := trends.NewRequest(body.RequestParams)
	if err != nil {
		var confErr *trends.ConfigurationError
		if errors.As(err, &confErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": confErr.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	opts, err := body.options()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	started := time.Now()
	result := h.analyzer.Analyze(c.UserContext(), req, opts)

	// Run recording is best-effort bookkeeping; the analysis result stands
	// even if it fails.
	_ = h.runs.Record(c.UserContext(), nil, req, "api", result, time.Since(started).Milliseconds())

	return c.JSON(result)
}

// Export godoc
// @Summary Export a trend analysis as a file
// @Description Runs the analysis and downloads it as an Excel workbook or a PDF report
// @Tags Trends
// @Accept json
// @Produce application/octet-stream
// @Param format query string false "Export format (excel or pdf)" default(excel)
// @Param request body AnalyzeRequestBody true "Analysis request"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} trends.Result
// @Router /trends/export [post]
func (h *TrendsHandler) Export(c *fiber.Ctx) error {
	var body AnalyzeRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req, err := trends.NewRequest(body.RequestParams)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	opts, err := body.options()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	format := export.Format(c.Query("format", string(export.FormatExcel)))
	if format != export.FormatExcel && format != export.FormatPDF {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be excel or pdf",
		})
	}

	result, series := h.analyzer.AnalyzeSeries(c.UserContext(), req, opts)
	if result.Status != trends.StatusSuccess {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	report, err := export.FromAnalysis(req, result, series)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	payload, contentType, err := h.exportService.Export(report, format)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	filename := fmt.Sprintf("trend-report-%s%s", req.Metric, h.exportService.FileExtension(format))
	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(payload)
}

// DateBounds godoc
// @Summary Available date range
// @Description Returns the min/max transaction dates available for analysis
// @Tags Trends
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /trends/date-range [get]
func (h *TrendsHandler) DateBounds(c *fiber.Ctx) error {
	min, max, ok, err := h.source.DateBounds(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  trends.StatusError,
			"message": err.Error(),
		})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  trends.StatusError,
			"message": trends.ErrNoDateRange.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":   trends.StatusSuccess,
		"min_date": min.Format("2006-01-02"),
		"max_date": max.Format("2006-01-02"),
	})
}
