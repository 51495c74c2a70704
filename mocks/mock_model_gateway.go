package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veridoc/internal/port"
)

// MockModelGateway is a mock implementation of port.ModelGateway.
type MockModelGateway struct {
	mock.Mock
}

func (m *MockModelGateway) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ClassifyOutput), args.Error(1)
}

func (m *MockModelGateway) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ExtractOutput), args.Error(1)
}
