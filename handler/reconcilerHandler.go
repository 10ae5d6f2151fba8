package handler

import (
	"log/slog"
	"net/http"

	"github.com/siherrmann/sheetReconciler/database"
	"github.com/siherrmann/sheetReconciler/helper"
	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/reconcile"
	"github.com/siherrmann/sheetReconciler/upload"

	"github.com/labstack/echo/v5"
	"github.com/siherrmann/validator"
)

const defaultMaxUploadBytes = 32 << 20

type ReconcilerHandler struct {
	filesystem     upload.Filesystem
	validator      *validator.Validator
	resultDB       database.ResultDBHandlerFunctions
	logs           *helper.LogBuffer
	logger         *slog.Logger
	mapping        reconcile.MappingConfig
	maxUploadBytes int64
}

// Option configures a ReconcilerHandler.
type Option func(*ReconcilerHandler)

// WithMaxUploadBytes limits the size of multipart requests.
func WithMaxUploadBytes(maxBytes int64) Option {
	return func(h *ReconcilerHandler) {
		if maxBytes > 0 {
			h.maxUploadBytes = maxBytes
		}
	}
}

// WithMappingConfig replaces the default copier workbook layout.
func WithMappingConfig(cfg reconcile.MappingConfig) Option {
	return func(h *ReconcilerHandler) {
		h.mapping = cfg
	}
}

func NewReconcilerHandler(filesystem upload.Filesystem, resultDB database.ResultDBHandlerFunctions, logs *helper.LogBuffer, logger *slog.Logger, opts ...Option) *ReconcilerHandler {
	h := &ReconcilerHandler{
		filesystem:     filesystem,
		validator:      validator.NewValidator(),
		resultDB:       resultDB,
		logs:           logs,
		logger:         logger,
		mapping:        reconcile.DefaultMappingConfig(),
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health check handler
func (m *ReconcilerHandler) HealthCheck(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sheet-reconciler",
	})
}

// GetLogs returns the lines of the log pane
func (m *ReconcilerHandler) GetLogs(c *echo.Context) error {
	lines := []string{}
	if m.logs != nil {
		lines = m.logs.Lines()
	}
	return c.JSON(http.StatusOK, lines)
}

// requestLogger tags the handler logger with the id set by the request context middleware.
func (m *ReconcilerHandler) requestLogger(c *echo.Context) *slog.Logger {
	if requestID := model.RequestIDFromContext(c.Request().Context()); requestID != "" {
		return m.logger.With(slog.String("request_id", requestID))
	}
	return m.logger
}
