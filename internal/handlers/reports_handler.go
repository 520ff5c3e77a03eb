package handlers

import (
	"encoding/json"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/reports"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportsHandler struct {
	service   *reports.Service
	scheduler *reports.Scheduler
}

func NewReportsHandler(service *reports.Service, scheduler *reports.Scheduler) *ReportsHandler {
	return &ReportsHandler{
		service:   service,
		scheduler: scheduler,
	}
}

// SaveReportRequest is the HTTP body for creating or updating a saved report.
type SaveReportRequest struct {
	Name         string                 `json:"name"`
	TimeGrain    string                 `json:"time_grain"`
	Metric       string                 `json:"metric"`
	Dimension    string                 `json:"dimension"`
	TopN         int                    `json:"top_n"`
	TrendPeriods int                    `json:"trend_periods"`
	Filters      map[string]interface{} `json:"filters"`
	Schedule     string                 `json:"schedule"`
	IsActive     *bool                  `json:"is_active"`
}

func (r *SaveReportRequest) apply(report *models.SavedReport) error {
	report.Name = r.Name
	report.TimeGrain = r.TimeGrain
	report.Metric = r.Metric
	report.Dimension = r.Dimension
	report.TopN = r.TopN
	report.TrendPeriods = r.TrendPeriods
	report.Schedule = r.Schedule
	if r.IsActive != nil {
		report.IsActive = *r.IsActive
	}

	if r.Filters != nil {
		raw, err := json.Marshal(r.Filters)
		if err != nil {
			return err
		}
		report.Filters = datatypes.JSON(raw)
	}
	return nil
}

// CreateReport godoc
// @Summary Create a saved report
// @Description Persists an analysis definition; a cron schedule makes it run automatically
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body SaveReportRequest true "Report definition"
// @Success 201 {object} models.SavedReport
// @Failure 400 {object} map[string]interface{}
// @Router /reports [post]
func (h *ReportsHandler) CreateReport(c *fiber.Ctx) error {
	var body SaveReportRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	var report models.SavedReport
	if err := body.apply(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Reject definitions the analyzer would refuse to run.
	if _, err := reports.RequestFor(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.service.Repo().Create(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if report.Schedule != "" && report.IsActive {
		if err := h.scheduler.AddReport(c.UserContext(), &report); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// ListReports godoc
// @Summary List saved reports
// @Tags Reports
// @Produce json
// @Param limit query int false "Maximum number of reports"
// @Success 200 {array} models.SavedReport
// @Router /reports [get]
func (h *ReportsHandler) ListReports(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	list, err := h.service.Repo().List(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(list)
}

// GetReport godoc
// @Summary Get a saved report by ID
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.SavedReport
// @Failure 404 {object} map[string]interface{}
// @Router /reports/{id} [get]
func (h *ReportsHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.service.Repo().GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// UpdateReport godoc
// @Summary Update a saved report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param report body SaveReportRequest true "Report definition"
// @Success 200 {object} models.SavedReport
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /reports/{id} [put]
func (h *ReportsHandler) UpdateReport(c *fiber.Ctx) error {
	report, err := h.service.Repo().GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var body SaveReportRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := body.apply(report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if _, err := reports.RequestFor(report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.service.Repo().Update(report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if report.Schedule != "" && report.IsActive {
		if err := h.scheduler.AddReport(c.UserContext(), report); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	} else {
		h.scheduler.RemoveReport(report.ID.String())
	}

	return c.JSON(report)
}

// DeleteReport godoc
// @Summary Delete a saved report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /reports/{id} [delete]
func (h *ReportsHandler) DeleteReport(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Repo().Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.scheduler.RemoveReport(id)
	return c.JSON(fiber.Map{"status": "deleted"})
}

// RunReport godoc
// @Summary Run a saved report now
// @Description Executes the report immediately and records the run
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} trends.Result
// @Failure 404 {object} map[string]interface{}
// @Router /reports/{id}/run [post]
func (h *ReportsHandler) RunReport(c *fiber.Ctx) error {
	report, err := h.service.Repo().GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.service.Run(c.UserContext(), report, "manual")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

// ListRuns godoc
// @Summary List analysis run history
// @Tags Reports
// @Produce json
// @Param report_id query string false "Filter by report ID"
// @Param status query string false "Filter by run status (success, error)"
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} models.AnalysisRun
// @Router /runs [get]
func (h *ReportsHandler) ListRuns(c *fiber.Ctx) error {
	filter := reports.RunFilter{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", 50),
	}

	if idStr := c.Query("report_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid report_id",
			})
		}
		filter.ReportID = &id
	}

	runs, err := h.service.Runs().List(c.UserContext(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(runs)
}
