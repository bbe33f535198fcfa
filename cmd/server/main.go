package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uploadbroker/internal/config"
	"uploadbroker/internal/handler"
	"uploadbroker/internal/llm/bedrock"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/metrics"
	"uploadbroker/internal/router"
	"uploadbroker/internal/service"
	"uploadbroker/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing destination is reported per request, not at startup.
	if _, err := cfg.Storage.Destination(); err != nil {
		logger.Warn("storage destination incomplete; authorizations will fail", zap.Error(err))
	}

	// Initialize storage
	store, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	invoker, err := bedrock.NewInvoker(ctx, &cfg.Model, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize model client: %w", err)
	}

	m := metrics.New()

	// Initialize services
	presignSvc := service.NewPresignService(store, &cfg.Storage, m, logger)
	directSvc := service.NewDirectUploadService(store, &cfg.Storage, m, logger)
	promptSvc := service.NewPromptService(invoker, &cfg.Model, logger)

	// Initialize handlers
	handlers := router.Handlers{
		Presign:      handler.NewPresignHandler(presignSvc, logger),
		DirectUpload: handler.NewDirectUploadHandler(directSvc, cfg.Storage.MaxUploadMB, logger),
		Prompt:       handler.NewPromptHandler(promptSvc, logger),
		Health:       handler.NewHealthHandler(&cfg.Storage),
	}

	// Setup router
	r := router.Setup(cfg, handlers, m, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.Stringer("storage", cfg.Storage),
			zap.Bool("auth", cfg.Auth.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
