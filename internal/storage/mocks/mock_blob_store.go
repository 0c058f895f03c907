package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uploadapi/internal/storage"
)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Store(ctx context.Context, name string, content []byte, contentType string) (storage.Object, error) {
	args := m.Called(ctx, name, content, contentType)
	if f, ok := args.Get(0).(func(context.Context, string, []byte, string) storage.Object); ok {
		return f(ctx, name, content, contentType), args.Error(1)
	}
	return args.Get(0).(storage.Object), args.Error(1)
}
