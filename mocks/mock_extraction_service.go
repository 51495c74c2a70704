package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veridoc/internal/domain"
	"veridoc/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, input service.ExtractionInput) (*domain.PipelineResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineResult), args.Error(1)
}

func (m *MockExtractionService) Models() []domain.ModelInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ModelInfo)
}

func (m *MockExtractionService) Defaults() (string, string) {
	args := m.Called()
	return args.String(0), args.String(1)
}
