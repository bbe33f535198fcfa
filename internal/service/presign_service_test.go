package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uploadbroker/internal/config"
	"uploadbroker/internal/domain"
	"uploadbroker/internal/metrics"
	"uploadbroker/internal/port"
	"uploadbroker/internal/service"
	"uploadbroker/mocks"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Provider:      "s3",
		Bucket:        "test-bucket",
		Region:        "us-east-1",
		PresignExpiry: domain.DefaultPresignExpiry,
		MaxUploadMB:   1,
	}
}

func presignOK(url string) *port.PresignOutput {
	return &port.PresignOutput{
		URL:     url,
		Method:  "PUT",
		Headers: map[string]string{"content-type": "text/plain"},
	}
}

func TestPresignService_Authorize_Success(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, port.PresignInput{
		Bucket:      "test-bucket",
		Key:         "a.txt",
		ContentType: "text/plain",
		Expiry:      domain.DefaultPresignExpiry,
	}).Return(presignOK("https://test-bucket.s3.amazonaws.com/a.txt?X-Amz-Signature=abc"), nil)

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt", ContentType: "text/plain"})

	require.NoError(t, err)
	assert.Equal(t, "a.txt", auth.Key)
	assert.NotEmpty(t, auth.URL)
	assert.Equal(t, "PUT", auth.Method)
	assert.Equal(t, "text/plain", auth.Headers["Content-Type"])
	assert.Equal(t, int64(120), auth.ExpiresIn)
	storage.AssertExpectations(t)
}

func TestPresignService_Authorize_DefaultContentType(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, mock.MatchedBy(func(in port.PresignInput) bool {
		return in.ContentType == domain.DefaultContentType
	})).Return(&port.PresignOutput{URL: "https://example/a.bin"}, nil)

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.bin"})

	require.NoError(t, err)
	assert.Equal(t, "PUT", auth.Method)
	assert.Equal(t, domain.DefaultContentType, auth.Headers["Content-Type"])
	storage.AssertExpectations(t)
}

func TestPresignService_Authorize_ContentTypeAddedWhenUnsigned(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	cfg.Encryption = true
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	// S3 signs only host and the SSE directive.
	storage.On("PresignPut", mock.Anything, mock.Anything).Return(&port.PresignOutput{
		URL:     "https://test-bucket.s3.amazonaws.com/a.csv?X-Amz-SignedHeaders=host%3Bx-amz-server-side-encryption",
		Method:  "PUT",
		Headers: map[string]string{"X-Amz-Server-Side-Encryption": "AES256"},
	}, nil)

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.csv", ContentType: "text/csv"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Content-Type":                 "text/csv",
		"X-Amz-Server-Side-Encryption": "AES256",
	}, auth.Headers)
}

func TestPresignService_Authorize_TrimsFilename(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, mock.MatchedBy(func(in port.PresignInput) bool {
		return in.Key == "a.txt"
	})).Return(presignOK("https://example/a.txt"), nil)

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "  a.txt "})

	require.NoError(t, err)
	assert.Equal(t, "a.txt", auth.Key)
	storage.AssertExpectations(t)
}

func TestPresignService_Authorize_EmptyFilename(t *testing.T) {
	for _, name := range []string{"", "   "} {
		storage := new(mocks.MockObjectStorage)
		cfg := testStorageConfig()
		svc := service.NewPresignService(storage, &cfg, nil, nil)

		auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: name})

		assert.Nil(t, auth)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "filename required", err.Error())
		storage.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything)
	}
}

func TestPresignService_Authorize_FilenameTooLong(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	_, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: strings.Repeat("k", domain.MaxKeyLength+1)})

	assert.ErrorIs(t, err, domain.ErrFilenameTooLong)
	storage.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything)
}

func TestPresignService_Authorize_MissingConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.StorageConfig)
	}{
		{"no bucket", func(c *config.StorageConfig) { c.Bucket = "" }},
		{"no region", func(c *config.StorageConfig) { c.Region = "" }},
		{"neither", func(c *config.StorageConfig) { c.Bucket, c.Region = "", "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(mocks.MockObjectStorage)
			cfg := testStorageConfig()
			tt.mutate(&cfg)
			svc := service.NewPresignService(storage, &cfg, nil, nil)

			auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt"})

			assert.Nil(t, auth)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			storage.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything)
		})
	}
}

func TestPresignService_Authorize_EncryptionAndPrefixFromConfig(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	cfg.Encryption = true
	cfg.KeyPrefix = "uploads/"
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, mock.MatchedBy(func(in port.PresignInput) bool {
		return in.Encryption && in.Key == "uploads/a.txt" && in.Bucket == "test-bucket"
	})).Return(&port.PresignOutput{
		URL:     "https://example/uploads/a.txt",
		Method:  "PUT",
		Headers: map[string]string{"Content-Type": "text/plain", "X-Amz-Server-Side-Encryption": "AES256"},
	}, nil)

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt", ContentType: "text/plain"})

	require.NoError(t, err)
	assert.Equal(t, "uploads/a.txt", auth.Key)
	assert.Equal(t, "AES256", auth.Headers["X-Amz-Server-Side-Encryption"])
	storage.AssertExpectations(t)
}

func TestPresignService_Authorize_CredentialError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: empty key pair", domain.ErrCredentials))

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt"})

	assert.Nil(t, auth)
	assert.ErrorIs(t, err, domain.ErrCredentials)
	assert.NotErrorIs(t, err, domain.ErrProvider)
}

func TestPresignService_Authorize_ProviderError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, mock.Anything).Return(nil, errors.New("endpoint resolution failed"))

	auth, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt"})

	assert.Nil(t, auth)
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestPresignService_Authorize_NotCached(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	svc := service.NewPresignService(storage, &cfg, nil, nil)

	storage.On("PresignPut", mock.Anything, mock.Anything).Return(presignOK("https://example/a.txt?sig=1"), nil).Once()
	storage.On("PresignPut", mock.Anything, mock.Anything).Return(presignOK("https://example/a.txt?sig=2"), nil).Once()

	first, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt"})
	require.NoError(t, err)
	second, err := svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt"})
	require.NoError(t, err)

	assert.NotEqual(t, first.URL, second.URL)
	assert.Equal(t, first.Key, second.Key)
	storage.AssertNumberOfCalls(t, "PresignPut", 2)
}

func TestPresignService_Authorize_Metrics(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testStorageConfig()
	m := metrics.New()
	svc := service.NewPresignService(storage, &cfg, m, nil)

	storage.On("PresignPut", mock.Anything, mock.Anything).Return(presignOK("https://example/a.txt"), nil)

	_, _ = svc.Authorize(context.Background(), domain.UploadRequest{Filename: "a.txt"})
	_, _ = svc.Authorize(context.Background(), domain.UploadRequest{Filename: ""})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Authorizations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Authorizations.WithLabelValues(domain.KindValidation)))
}
