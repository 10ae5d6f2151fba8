package sheetReconciler

import (
	"net/http"

	"github.com/siherrmann/sheetReconciler/handler"
	mw "github.com/siherrmann/sheetReconciler/middleware"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

// SetupRoutes configures all view and API routes for the reconciler service
func SetupRoutes(e *echo.Echo, h *handler.ReconcilerHandler) {
	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		ExposeHeaders: []string{"X-Result-Id", mw.HeaderRequestID},
	}))

	// Custom Middleware
	m := mw.NewMiddleware()
	e.Use(m.RequestContextMiddleware)

	// View routes
	e.GET("/health", h.HealthCheck, m.CsrfMiddleware())
	e.GET("/", h.IndexView, m.CsrfMiddleware())
	e.GET("/files", h.FilesView, m.CsrfMiddleware())
	e.GET("/results", h.ResultsView, m.CsrfMiddleware())
	e.GET("/logs", h.LogsView, m.CsrfMiddleware())

	// API routes
	api := e.Group("/api")

	reconciles := api.Group("/reconcile")
	reconciles.POST("/process", h.ProcessReconcile)
	reconciles.POST("/download", h.DownloadReconcile)

	mappings := api.Group("/mapping")
	mappings.POST("/process", h.ProcessMapping)
	mappings.GET("/download/:rid", h.DownloadResult)
	mappings.POST("/script/:rid", h.GenerateScript)

	results := api.Group("/result")
	results.GET("/getResults", h.GetResults)
	results.GET("/download/:rid", h.DownloadResult)
	results.POST("/deleteResult/:rid", h.DeleteResult)

	files := api.Group("/file")
	files.POST("/uploadFiles", h.UploadFiles)
	files.POST("/deleteFile/:filename", h.DeleteFile)
	files.GET("/getFiles", h.GetFiles)

	api.GET("/logs", h.GetLogs)

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Static("/static/", "./view/static")
}
