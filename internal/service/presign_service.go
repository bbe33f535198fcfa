package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"uploadbroker/internal/config"
	"uploadbroker/internal/domain"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/metrics"
	"uploadbroker/internal/port"
)

// PresignService is the broker: it turns an upload request into a
// time-limited authorization for exactly one object key.
type PresignService interface {
	Authorize(ctx context.Context, req domain.UploadRequest) (*domain.UploadAuthorization, error)
}

type presignService struct {
	presigner port.Presigner
	cfg       *config.StorageConfig
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewPresignService creates a PresignService. The storage destination is
// read from cfg on every call and never from the request.
func NewPresignService(
	presigner port.Presigner,
	cfg *config.StorageConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) PresignService {
	return &presignService{
		presigner: presigner,
		cfg:       cfg,
		metrics:   m,
		logger:    logging.OrNop(logger),
	}
}

func (s *presignService) Authorize(ctx context.Context, req domain.UploadRequest) (*domain.UploadAuthorization, error) {
	auth, err := s.authorize(ctx, req)
	if err != nil {
		s.metrics.ObserveAuthorization(domain.KindOf(err))
		return nil, err
	}
	s.metrics.ObserveAuthorization("ok")
	return auth, nil
}

func (s *presignService) authorize(ctx context.Context, req domain.UploadRequest) (*domain.UploadAuthorization, error) {
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		return nil, domain.ErrFilenameRequired
	}
	if len(filename) > domain.MaxKeyLength {
		return nil, domain.ErrFilenameTooLong
	}

	dest, err := s.cfg.Destination()
	if err != nil {
		s.logger.Error("presign: destination not configured", zap.Error(err))
		return nil, err
	}

	key := ResolveKey(dest.KeyPrefix, filename)
	if len(key) > domain.MaxKeyLength {
		return nil, domain.ErrFilenameTooLong
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = domain.DefaultContentType
	}

	out, err := s.presigner.PresignPut(ctx, port.PresignInput{
		Bucket:      dest.Bucket,
		Key:         key,
		ContentType: contentType,
		Encryption:  dest.Encryption,
		Expiry:      s.cfg.PresignExpiry,
	})
	if err != nil {
		s.logger.Error("presign: provider authorization failed",
			zap.String("key", key), zap.String("kind", domain.KindOf(err)), zap.Error(err))
		if !errors.Is(err, domain.ErrCredentials) && !errors.Is(err, domain.ErrProvider) {
			err = fmt.Errorf("%w: %w", domain.ErrProvider, err)
		}
		return nil, err
	}

	headers := make(map[string]string, len(out.Headers)+1)
	for k, v := range out.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = contentType
	}

	method := out.Method
	if method == "" {
		method = http.MethodPut
	}

	expiry := s.cfg.PresignExpiry
	if expiry <= 0 {
		expiry = domain.DefaultPresignExpiry
	}

	s.logger.Info("presign: authorization issued",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Bool("encrypted", dest.Encryption),
		zap.Duration("expires_in", expiry),
	)

	return &domain.UploadAuthorization{
		URL:       out.URL,
		Key:       key,
		Method:    method,
		Headers:   headers,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}

// ResolveKey maps a requested filename to the object key actually written.
// The broker-side prefix is prepended verbatim.
func ResolveKey(prefix, filename string) string {
	return prefix + filename
}
