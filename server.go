package sheetReconciler

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/siherrmann/sheetReconciler/database"
	"github.com/siherrmann/sheetReconciler/handler"
	"github.com/siherrmann/sheetReconciler/helper"
	"github.com/siherrmann/sheetReconciler/reconcile"
	"github.com/siherrmann/sheetReconciler/upload"

	"github.com/labstack/echo/v5"
)

// ServerConfig holds the settings of the reconciler service.
type ServerConfig struct {
	Port            string
	LogLevel        slog.Level
	LogLines        int
	SeqURL          string
	ResultTTL       time.Duration
	CleanupInterval time.Duration
	MaxUploadBytes  int64
	// Collision names the join collision policy of the mapping copier.
	Collision string
}

// ServerConfigFromEnv reads the server settings from SHEET_RECONCILER_* environment variables.
func ServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Port:            helper.GetEnvOrDefault("SHEET_RECONCILER_PORT", "5000"),
		LogLevel:        helper.ParseLogLevel(helper.GetEnvOrDefault("SHEET_RECONCILER_LOG_LEVEL", "info")),
		LogLines:        helper.GetEnvIntOrDefault("SHEET_RECONCILER_LOG_LINES", 200),
		SeqURL:          helper.GetEnvOrDefault("SHEET_RECONCILER_SEQ_URL", ""),
		ResultTTL:       helper.GetEnvDurationOrDefault("SHEET_RECONCILER_RESULT_TTL", time.Hour),
		CleanupInterval: helper.GetEnvDurationOrDefault("SHEET_RECONCILER_CLEANUP_INTERVAL", time.Minute),
		MaxUploadBytes:  int64(helper.GetEnvIntOrDefault("SHEET_RECONCILER_MAX_UPLOAD_MB", 32)) << 20,
		Collision:       helper.GetEnvOrDefault("SHEET_RECONCILER_COLLISION", "keep_left"),
	}
}

// ReconcilerServer initializes the reconciler handler, sets up routes, and starts the Echo server.
func ReconcilerServer(cfg ServerConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rh, closeLogger, err := InitReconcilerHandler(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize reconciler handler: %v", err)
	}
	defer closeLogger()

	e := echo.New()
	SetupRoutes(e, rh)

	err = e.Start(":" + cfg.Port)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// InitReconcilerHandler creates the logger, the upload storage and the result store and wires them into a handler.
// Expired results are removed in the background until ctx is done.
// The returned function flushes the log sinks.
func InitReconcilerHandler(ctx context.Context, cfg ServerConfig) (*handler.ReconcilerHandler, func(), error) {
	mapping := reconcile.DefaultMappingConfig()
	collision, err := reconcile.ParseCollisionPolicy(cfg.Collision)
	if err != nil {
		return nil, nil, err
	}
	mapping.Join.Collision = collision

	// Logger
	logs := helper.NewLogBuffer(cfg.LogLines)
	logger, closeLogger := helper.NewLogger(helper.LoggerConfig{
		Level:  cfg.LogLevel,
		Buffer: logs,
		SeqURL: cfg.SeqURL,
	})

	// Create filesystem from environment variables
	filesystem, err := upload.CreateFilesystemFromEnv()
	if err != nil {
		closeLogger()
		return nil, nil, fmt.Errorf("failed to create filesystem: %w", err)
	}

	// Initialize result database handler
	resultDB, err := database.NewResultDBHandler(logger, cfg.ResultTTL)
	if err != nil {
		closeLogger()
		return nil, nil, fmt.Errorf("failed to create result database handler: %w", err)
	}
	if cfg.ResultTTL > 0 && cfg.CleanupInterval > 0 {
		go cleanupResults(ctx, resultDB, cfg.CleanupInterval, logger)
	}

	rh := handler.NewReconcilerHandler(filesystem, resultDB, logs, logger,
		handler.WithMaxUploadBytes(cfg.MaxUploadBytes),
		handler.WithMappingConfig(mapping),
	)
	logger.Info("Reconciler handler initialized",
		slog.String("port", cfg.Port),
		slog.Duration("result_ttl", cfg.ResultTTL),
		slog.String("collision", collision.String()),
	)

	return rh, closeLogger, nil
}

func cleanupResults(ctx context.Context, resultDB database.ResultDBHandlerFunctions, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			deleted, err := resultDB.DeleteExpired(now)
			if err != nil {
				logger.Error("Failed to delete expired results", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.Info("Deleted expired results", slog.Int("count", deleted))
			}
		}
	}
}
