// Package serverless exposes the broker as an API Gateway HTTP API (v2)
// Lambda handler.
package serverless

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"uploadbroker/internal/domain"
	"uploadbroker/internal/handler"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/service"
)

// Handler routes API Gateway events to the broker services.
type Handler struct {
	presignService service.PresignService
	logger         *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(presignService service.PresignService, logger *zap.Logger) *Handler {
	return &Handler{presignService: presignService, logger: logging.OrNop(logger)}
}

// Handle serves one API Gateway request. Failures are always encoded in the
// response; the returned error is reserved for the Lambda runtime.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := req.RequestContext.HTTP.Method
	path := req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	path = strings.TrimRight(path, "/")

	switch {
	case method == http.MethodPost && path == "/api/s3/presign":
		return h.presign(ctx, req), nil
	case method == http.MethodGet && path == "/healthz":
		return jsonResponse(http.StatusOK, map[string]string{"status": "ok"}), nil
	default:
		return jsonResponse(http.StatusNotFound, handler.ErrorBody{Error: "not found", Kind: domain.KindValidation}), nil
	}
}

func (h *Handler) presign(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return jsonResponse(http.StatusBadRequest, handler.ErrorBody{Error: "invalid request body", Kind: domain.KindValidation})
		}
		body = decoded
	}

	var in handler.PresignRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &in); err != nil {
			return jsonResponse(http.StatusBadRequest, handler.ErrorBody{Error: "invalid request body", Kind: domain.KindValidation})
		}
	}

	auth, err := h.presignService.Authorize(ctx, domain.UploadRequest{Filename: in.Filename, ContentType: in.Type})
	if err != nil {
		status, kind, msg := handler.MapDomainError(err)
		if status >= 500 {
			h.logger.Error("presign failed",
				zap.String("request_id", req.RequestContext.RequestID), zap.String("kind", kind), zap.Error(err))
		}
		return jsonResponse(status, handler.ErrorBody{Error: msg, Kind: kind})
	}
	return jsonResponse(http.StatusOK, auth)
}

func jsonResponse(status int, v interface{}) events.APIGatewayV2HTTPResponse {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"an internal error occurred","kind":"internal"}`)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}
