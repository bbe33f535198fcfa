// Package minio implements object storage for any S3-compatible provider
// (MinIO, Ceph, ArvanCloud) using minio-go.
package minio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/encrypt"

	"uploadbroker/internal/config"
	"uploadbroker/internal/domain"
	"uploadbroker/internal/port"
)

// Storage implements port.ObjectStorage on top of a minio client.
type Storage struct {
	client *minio.Client
	creds  *credentials.Credentials
}

// NewStorage creates a minio client for cfg.Endpoint. No request is sent;
// the region must be configured so presigning never needs a bucket
// location lookup.
func NewStorage(cfg *config.StorageConfig) (*Storage, error) {
	host, secure, err := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	creds := credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	client, err := minio.New(host, &minio.Options{
		Creds:  creds,
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Storage{client: client, creds: creds}, nil
}

// splitEndpoint accepts either "host:port" or a full URL. A URL scheme
// overrides useSSL.
func splitEndpoint(endpoint string, useSSL bool) (string, bool, error) {
	if endpoint == "" {
		return "", false, fmt.Errorf("%w: minio endpoint required", domain.ErrConfiguration)
	}
	if !strings.Contains(endpoint, "://") {
		return endpoint, useSSL, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("%w: invalid endpoint %q: %w", domain.ErrConfiguration, endpoint, err)
	}
	return u.Host, u.Scheme == "https", nil
}

func (s *Storage) checkCredentials() error {
	v, err := s.creds.Get()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCredentials, err)
	}
	if v.AccessKeyID == "" || v.SecretAccessKey == "" {
		return fmt.Errorf("%w: empty key pair", domain.ErrCredentials)
	}
	return nil
}

// PresignPut signs a PUT for one key. Content-Type and the encryption
// directive are signed headers the uploader has to replay.
func (s *Storage) PresignPut(ctx context.Context, input port.PresignInput) (*port.PresignOutput, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	expiry := input.Expiry
	if expiry <= 0 {
		expiry = domain.DefaultPresignExpiry
	}

	headers := http.Header{}
	headers.Set("Content-Type", input.ContentType)
	if input.Encryption {
		headers.Set("X-Amz-Server-Side-Encryption", domain.SSEAlgorithmAES256)
	}

	u, err := s.client.PresignHeader(ctx, http.MethodPut, input.Bucket, input.Key, expiry, url.Values{}, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: minio presign: %w", domain.ErrProvider, err)
	}

	out := &port.PresignOutput{
		URL:     u.String(),
		Method:  http.MethodPut,
		Headers: make(map[string]string, len(headers)),
	}
	for name := range headers {
		out.Headers[name] = headers.Get(name)
	}
	return out, nil
}

// Upload streams input.Body to the bucket. A non-positive Size lets minio
// buffer the stream.
func (s *Storage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	size := input.Size
	if size <= 0 {
		size = -1
	}
	opts := minio.PutObjectOptions{ContentType: input.ContentType}
	if input.Encryption {
		opts.ServerSideEncryption = encrypt.NewSSE()
	}

	info, err := s.client.PutObject(ctx, input.Bucket, input.Key, input.Body, size, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: put object %q: %w", domain.ErrProvider, input.Key, err)
	}

	return &port.UploadOutput{
		Location: info.Location,
		ETag:     info.ETag,
	}, nil
}
