package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uploadbroker/internal/domain"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/service"
)

// PresignHandler hands out single-object upload authorizations.
type PresignHandler struct {
	presignService service.PresignService
	logger         *zap.Logger
}

// NewPresignHandler creates a new PresignHandler.
func NewPresignHandler(presignService service.PresignService, logger *zap.Logger) *PresignHandler {
	return &PresignHandler{presignService: presignService, logger: logging.OrNop(logger)}
}

// Presign handles POST /api/s3/presign
// @Summary Authorize one upload
// @Description Returns a short-lived URL that allows exactly one PUT of the named object
// @Tags uploads
// @Accept json
// @Produce json
// @Param body body PresignRequest true "File to authorize"
// @Success 200 {object} domain.UploadAuthorization "Authorization issued"
// @Failure 400 {object} ErrorBody "Missing filename or malformed body"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 429 {object} ErrorBody "Rate limited"
// @Failure 500 {object} ErrorBody "Destination or credentials not configured"
// @Router /s3/presign [post]
func (h *PresignHandler) Presign(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.KindValidation, "invalid request body")
		return
	}

	auth, err := h.presignService.Authorize(c.Request.Context(), domain.UploadRequest{
		Filename:    req.Filename,
		ContentType: req.Type,
	})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, auth)
}
