package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"uploadbroker/internal/config"
	"uploadbroker/internal/domain"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/port"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

// PromptInput is a single user prompt for the hosted model.
type PromptInput struct {
	Prompt  string
	ModelID string
}

// PromptService forwards one prompt to the model endpoint. There is no
// retry; the caller decides whether to ask again.
type PromptService interface {
	Complete(ctx context.Context, input PromptInput) (json.RawMessage, error)
}

type promptService struct {
	invoker port.ModelInvoker
	cfg     *config.ModelConfig
	logger  *zap.Logger
}

// NewPromptService creates a PromptService.
func NewPromptService(invoker port.ModelInvoker, cfg *config.ModelConfig, logger *zap.Logger) PromptService {
	return &promptService{invoker: invoker, cfg: cfg, logger: logging.OrNop(logger)}
}

type promptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type promptRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Messages         []promptMessage `json:"messages"`
}

func (s *promptService) Complete(ctx context.Context, input PromptInput) (json.RawMessage, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, domain.ErrPromptRequired
	}

	modelID := input.ModelID
	if modelID == "" {
		modelID = s.cfg.DefaultModel
	}
	maxTokens := s.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	body, err := json.Marshal(promptRequest{
		AnthropicVersion: anthropicBedrockVersion,
		MaxTokens:        maxTokens,
		Messages:         []promptMessage{{Role: "user", Content: input.Prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling prompt: %w", err)
	}

	resp, err := s.invoker.InvokeModel(ctx, modelID, body)
	if err != nil {
		s.logger.Error("prompt: model invocation failed", zap.String("model", modelID), zap.Error(err))
		return nil, fmt.Errorf("%w: invoking model: %w", domain.ErrProvider, err)
	}
	if !json.Valid(resp) {
		return nil, fmt.Errorf("%w: model returned non-JSON body", domain.ErrProvider)
	}

	s.logger.Debug("prompt: model responded", zap.String("model", modelID), zap.Int("bytes", len(resp)))
	return json.RawMessage(resp), nil
}
