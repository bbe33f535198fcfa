package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"uploadbroker/internal/config"
	"uploadbroker/internal/domain"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/metrics"
	"uploadbroker/internal/port"
)

// DirectUploadInput is a file the broker writes itself instead of handing
// out an authorization.
type DirectUploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DirectUploadService proxies uploads for clients that cannot PUT to the
// storage provider directly.
type DirectUploadService interface {
	Upload(ctx context.Context, input DirectUploadInput) (string, error)
}

type directUploadService struct {
	uploader port.ObjectUploader
	cfg      *config.StorageConfig
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewDirectUploadService creates a DirectUploadService.
func NewDirectUploadService(
	uploader port.ObjectUploader,
	cfg *config.StorageConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) DirectUploadService {
	return &directUploadService{
		uploader: uploader,
		cfg:      cfg,
		metrics:  m,
		logger:   logging.OrNop(logger),
	}
}

func (s *directUploadService) Upload(ctx context.Context, input DirectUploadInput) (string, error) {
	key, err := s.upload(ctx, input)
	if err != nil {
		s.metrics.ObserveDirectUpload(domain.KindOf(err))
		return "", err
	}
	s.metrics.ObserveDirectUpload("ok")
	return key, nil
}

func (s *directUploadService) upload(ctx context.Context, input DirectUploadInput) (string, error) {
	if input.Body == nil {
		return "", domain.ErrFileMissing
	}
	if strings.TrimSpace(input.Filename) == "" {
		return "", domain.ErrFilenameRequired
	}
	if s.cfg.MaxUploadMB > 0 && input.Size > s.cfg.MaxUploadMB*1024*1024 {
		return "", domain.ErrFileTooLarge
	}

	dest, err := s.cfg.Destination()
	if err != nil {
		s.logger.Error("direct upload: destination not configured", zap.Error(err))
		return "", err
	}

	key := ResolveKey(dest.KeyPrefix, input.Filename)
	if len(key) > domain.MaxKeyLength {
		return "", domain.ErrFilenameTooLong
	}

	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = domain.DefaultContentType
	}

	s.logger.Info("direct upload: writing object",
		zap.String("key", key), zap.String("content_type", contentType), zap.Int64("size", input.Size))

	_, err = s.uploader.Upload(ctx, port.UploadInput{
		Bucket:      dest.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: contentType,
		Size:        input.Size,
		Encryption:  dest.Encryption,
	})
	if err != nil {
		s.logger.Error("direct upload: provider rejected object", zap.String("key", key), zap.Error(err))
		if !errors.Is(err, domain.ErrCredentials) && !errors.Is(err, domain.ErrProvider) {
			err = fmt.Errorf("%w: %w", domain.ErrProvider, err)
		}
		return "", err
	}

	return key, nil
}
