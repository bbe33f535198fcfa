package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uploadbroker/internal/domain"
)

// ErrorBody is the JSON body of every failed broker response.
type ErrorBody struct {
	Error string `json:"error" example:"filename required"`
	Kind  string `json:"kind" example:"validation"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, kind, msg string) {
	c.JSON(status, ErrorBody{Error: msg, Kind: kind})
}

// MapDomainError translates domain errors to HTTP status codes, error kinds
// and caller-safe messages. Validation messages are returned verbatim.
func MapDomainError(err error) (status int, kind, msg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, domain.KindValidation, verr.Msg
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, domain.KindValidation, "invalid request"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, domain.KindTooLarge, "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, domain.KindUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, domain.KindRateLimited, "too many requests"
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, domain.KindConfiguration, "storage destination not configured"
	case errors.Is(err, domain.ErrCredentials):
		return http.StatusInternalServerError, domain.KindCredential, "storage credentials unavailable"
	case errors.Is(err, domain.ErrProvider):
		return http.StatusInternalServerError, domain.KindProvider, "storage provider rejected the request"
	default:
		return http.StatusInternalServerError, domain.KindInternal, "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, logger *zap.Logger, err error) {
	status, kind, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		logger.Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("path", c.FullPath()),
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
	RespondError(c, status, kind, msg)
}
