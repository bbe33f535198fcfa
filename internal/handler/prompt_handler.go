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

const promptFailedMessage = "Failed to process request"

// PromptHandler proxies one prompt to the hosted model.
type PromptHandler struct {
	promptService service.PromptService
	logger        *zap.Logger
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(promptService service.PromptService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{promptService: promptService, logger: logging.OrNop(logger)}
}

// Complete handles POST /api/aws/bedrock
// @Summary Send a prompt to the model
// @Tags models
// @Accept json
// @Produce json
// @Param body body PromptRequest true "Prompt"
// @Success 200 {object} PromptResponse "Model output"
// @Failure 400 {object} PromptResponse "Missing prompt"
// @Failure 500 {object} PromptResponse "Model call failed"
// @Router /aws/bedrock [post]
func (h *PromptHandler) Complete(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, PromptResponse{Success: false, Error: "invalid request body"})
		return
	}

	data, err := h.promptService.Complete(c.Request.Context(), service.PromptInput{
		Prompt:  req.Prompt,
		ModelID: req.ModelID,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, PromptResponse{Success: false, Error: verr.Msg})
			return
		}
		h.logger.Error("prompt request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, PromptResponse{Success: false, Error: promptFailedMessage})
		return
	}

	c.JSON(http.StatusOK, PromptResponse{Success: true, Data: data})
}
