package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uploadbroker/internal/service"
)

// MockDirectUploadService is a mock implementation of service.DirectUploadService.
type MockDirectUploadService struct {
	mock.Mock
}

func (m *MockDirectUploadService) Upload(ctx context.Context, input service.DirectUploadInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
