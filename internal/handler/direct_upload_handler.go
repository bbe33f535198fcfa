package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uploadbroker/internal/domain"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/service"
)

// multipartOverhead is the room left for form boundaries and fields on top
// of the file size limit.
const multipartOverhead = 1 << 20

// DirectUploadHandler accepts a file and writes it to storage on the
// caller's behalf.
type DirectUploadHandler struct {
	uploadService service.DirectUploadService
	maxBytes      int64
	logger        *zap.Logger
}

// NewDirectUploadHandler creates a new DirectUploadHandler. maxUploadMB <= 0
// leaves the request body unbounded.
func NewDirectUploadHandler(uploadService service.DirectUploadService, maxUploadMB int64, logger *zap.Logger) *DirectUploadHandler {
	var maxBytes int64
	if maxUploadMB > 0 {
		maxBytes = maxUploadMB*1024*1024 + multipartOverhead
	}
	return &DirectUploadHandler{uploadService: uploadService, maxBytes: maxBytes, logger: logging.OrNop(logger)}
}

// Upload handles POST /api/s3/direct
// @Summary Upload a file through the broker
// @Description Writes the file with the configured bucket and encryption policy
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param filename formData string false "Object key override"
// @Success 200 {object} DirectUploadResponse "Object written"
// @Failure 400 {object} ErrorBody "Missing file"
// @Failure 413 {object} ErrorBody "File too large"
// @Failure 500 {object} ErrorBody "Upload failed"
// @Router /s3/direct [post]
func (h *DirectUploadHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			HandleError(c, h.logger, domain.ErrFileTooLarge)
			return
		}
		HandleError(c, h.logger, domain.ErrFileMissing)
		return
	}
	defer func() { _ = file.Close() }()

	filename := c.PostForm("filename")
	if filename == "" {
		filename = header.Filename
	}

	key, err := h.uploadService.Upload(c.Request.Context(), service.DirectUploadInput{
		Filename:    filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, DirectUploadResponse{Key: key})
}
