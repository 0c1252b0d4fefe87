package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"reportgen/adapters/export"
	"reportgen/internal"
	"reportgen/internal/config"
)

// Version is reported by the health endpoint
const Version = "1.0"

// App represents the report generation API application
type App struct {
	router   *chi.Mux
	config   *config.Config
	logger   *internal.Logger
	exporter *export.Writer
	instance string
}

// NewApp creates the API application and wires its routes
func NewApp(cfg *config.Config) *App {
	app := &App{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   internal.NewLoggerFromString(cfg.Server.LogLevel),
		exporter: export.NewWriter(cfg.Storage.ExportDir),
		instance: uuid.NewString(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Post("/api/upload", a.handleUpload)
	a.router.Post("/api/detect-template", a.handleDetectTemplate)
	a.router.Post("/api/generate-report", a.handleGenerateReport)
	a.router.Post("/api/analyze", a.handleAnalyze)

	a.router.Post("/api/export-pdf", a.handleExportPDF)
	a.router.Post("/api/export-txt", a.handleExportTxt)
	a.router.Post("/api/export-html", a.handleExportHTML)

	a.router.Get("/api/health", a.handleHealth)
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.router
}

// Instance returns the per-process instance identifier
func (a *App) Instance() string {
	return a.instance
}
