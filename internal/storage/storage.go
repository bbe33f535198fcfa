// Package storage selects the object storage backend named in configuration.
package storage

import (
	"context"
	"fmt"

	"uploadbroker/internal/config"
	"uploadbroker/internal/port"
	"uploadbroker/internal/storage/minio"
	s3storage "uploadbroker/internal/storage/s3"
)

// New builds the configured backend once at startup.
func New(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch cfg.Provider {
	case "", "s3":
		return s3storage.NewS3Client(ctx, cfg)
	case "minio":
		return minio.NewStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}
