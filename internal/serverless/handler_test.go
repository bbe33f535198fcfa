package serverless_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uploadbroker/internal/domain"
	"uploadbroker/internal/serverless"
	"uploadbroker/mocks"
)

func apiRequest(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID: "req-1",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   path,
			},
		},
	}
}

func TestHandle_Presign(t *testing.T) {
	svc := new(mocks.MockPresignService)
	svc.On("Authorize", mock.Anything, domain.UploadRequest{Filename: "a.txt", ContentType: "text/plain"}).
		Return(&domain.UploadAuthorization{URL: "https://example/a.txt", Key: "a.txt", Method: "PUT", ExpiresIn: 120}, nil)
	h := serverless.NewHandler(svc, nil)

	resp, err := h.Handle(context.Background(), apiRequest(http.MethodPost, "/api/s3/presign", `{"filename":"a.txt","type":"text/plain"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.JSONEq(t, `{"url":"https://example/a.txt","key":"a.txt","method":"PUT","expires_in":120}`, resp.Body)
}

func TestHandle_Presign_Base64Body(t *testing.T) {
	svc := new(mocks.MockPresignService)
	svc.On("Authorize", mock.Anything, domain.UploadRequest{Filename: "b.bin"}).
		Return(&domain.UploadAuthorization{URL: "https://example/b.bin", Key: "b.bin", Method: "PUT"}, nil)
	h := serverless.NewHandler(svc, nil)

	req := apiRequest(http.MethodPost, "/api/s3/presign", base64.StdEncoding.EncodeToString([]byte(`{"filename":"b.bin"}`)))
	req.IsBase64Encoded = true
	resp, err := h.Handle(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestHandle_Presign_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{"filename required", `{}`, domain.ErrFilenameRequired, http.StatusBadRequest, `{"error":"filename required","kind":"validation"}`},
		{"configuration", `{"filename":"a"}`, fmt.Errorf("%w: missing bucket", domain.ErrConfiguration), http.StatusInternalServerError,
			`{"error":"storage destination not configured","kind":"configuration"}`},
		{"credentials", `{"filename":"a"}`, domain.ErrCredentials, http.StatusInternalServerError,
			`{"error":"storage credentials unavailable","kind":"credential"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockPresignService)
			svc.On("Authorize", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			h := serverless.NewHandler(svc, nil)

			resp, err := h.Handle(context.Background(), apiRequest(http.MethodPost, "/api/s3/presign", tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, resp.Body)
		})
	}
}

func TestHandle_InvalidJSON(t *testing.T) {
	svc := new(mocks.MockPresignService)
	h := serverless.NewHandler(svc, nil)

	resp, err := h.Handle(context.Background(), apiRequest(http.MethodPost, "/api/s3/presign", `{bad`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
}

func TestHandle_Routes(t *testing.T) {
	h := serverless.NewHandler(new(mocks.MockPresignService), nil)

	resp, err := h.Handle(context.Background(), apiRequest(http.MethodGet, "/healthz", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = h.Handle(context.Background(), apiRequest(http.MethodGet, "/api/s3/presign", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
