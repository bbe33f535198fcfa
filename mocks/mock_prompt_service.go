package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"uploadbroker/internal/service"
)

// MockPromptService is a mock implementation of service.PromptService.
type MockPromptService struct {
	mock.Mock
}

func (m *MockPromptService) Complete(ctx context.Context, input service.PromptInput) (json.RawMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
