package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uploadapi/internal/model"
)

type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, in *model.UploadInput) (*model.UploadRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadRecord), args.Error(1)
}

func (m *MockUploadRepository) ListAll(ctx context.Context) ([]model.UploadRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UploadRecord), args.Error(1)
}
