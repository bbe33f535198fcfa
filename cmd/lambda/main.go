package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"uploadbroker/internal/config"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/serverless"
	"uploadbroker/internal/service"
	"uploadbroker/internal/storage"
)

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

	store, err := storage.New(context.Background(), &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	presignSvc := service.NewPresignService(store, &cfg.Storage, nil, logger)
	h := serverless.NewHandler(presignSvc, logger)

	logger.Info("lambda handler ready", zap.String("storage", cfg.Storage.String()))
	lambda.Start(h.Handle)
	return nil
}
