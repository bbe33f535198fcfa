package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uploadbroker/internal/config"
	"uploadbroker/internal/handler"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(&config.StorageConfig{})

	c, w := newJSONContext(http.MethodGet, "/healthz", "")
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	ready := handler.NewHealthHandler(&config.StorageConfig{Bucket: "b", Region: "us-east-1"})
	c, w := newJSONContext(http.MethodGet, "/readyz", "")
	ready.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	notReady := handler.NewHealthHandler(&config.StorageConfig{Region: "us-east-1"})
	c, w = newJSONContext(http.MethodGet, "/readyz", "")
	notReady.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandler_EnvCheck_NeverLeaksSecrets(t *testing.T) {
	h := handler.NewHealthHandler(&config.StorageConfig{
		Provider:      "s3",
		Bucket:        "private-bucket",
		Region:        "eu-west-1",
		AccessKey:     "AKIAEXAMPLEKEY",
		SecretKey:     "super-secret-value",
		PresignExpiry: 120 * time.Second,
	})

	c, w := newJSONContext(http.MethodGet, "/api/env-check", "")
	h.EnvCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "AKIAEXAMPLEKEY")
	assert.NotContains(t, w.Body.String(), "super-secret-value")

	var resp handler.EnvCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.HasAccessKey)
	assert.True(t, resp.HasSecretKey)
	assert.True(t, resp.HasBucket)
	assert.Equal(t, "eu-west-1", resp.Region)
	assert.Equal(t, int64(120), resp.PresignExpiry)
}
