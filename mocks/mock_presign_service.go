package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uploadbroker/internal/domain"
)

// MockPresignService is a mock implementation of service.PresignService.
type MockPresignService struct {
	mock.Mock
}

func (m *MockPresignService) Authorize(ctx context.Context, req domain.UploadRequest) (*domain.UploadAuthorization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadAuthorization), args.Error(1)
}
