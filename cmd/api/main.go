package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/reports"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/trends"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/handlers"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/sales-trend-analytics-be/docs"
)

// @title Sales Trend Analytics API
// @version 1.0
// @description Time-bucketed sales trend analysis over the sales transaction fact table
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger()
	log.Printf("🚀 Starting sales-trend-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Core services
	source := trends.NewGormSource(db.GORM)
	analyzer := trends.NewAnalyzer(source)
	exportService := export.NewService(cfg.ReportAuthor)

	reportRepo := reports.NewReportRepo(db.GORM)
	runLog := reports.NewRunLog(db.GORM)
	reportService := reports.NewService(reportRepo, analyzer, runLog)
	scheduler := reports.NewScheduler(reportService)

	if cfg.EnableSchedules {
		if err := scheduler.Start(context.Background()); err != nil {
			log.Fatalf("❌ Failed to start report scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Handlers
	trendsHandler := handlers.NewTrendsHandler(analyzer, source, exportService, runLog)
	reportsHandler := handlers.NewReportsHandler(reportService, scheduler)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Sales Trend Analytics API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "sales-trend-api",
		})
	})

	// Trend analysis routes
	app.Post("/trends/analyze", trendsHandler.Analyze)
	app.Post("/trends/export", trendsHandler.Export)
	app.Get("/trends/date-range", trendsHandler.DateBounds)

	// Saved report routes
	app.Post("/reports", reportsHandler.CreateReport)
	app.Get("/reports", reportsHandler.ListReports)
	app.Get("/reports/:id", reportsHandler.GetReport)
	app.Put("/reports/:id", reportsHandler.UpdateReport)
	app.Delete("/reports/:id", reportsHandler.DeleteReport)
	app.Post("/reports/:id/run", reportsHandler.RunReport)

	// Run history
	app.Get("/runs", reportsHandler.ListRuns)

	// Start server
	log.Printf("✅ sales-trend-api running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
