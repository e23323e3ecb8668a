package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUploader is a testify mock for storage.Uploader.
type MockUploader struct {
	mock.Mock
}

func NewMockUploader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUploader {
	m := &MockUploader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUploader) Upload(ctx context.Context, bucket, key string, body []byte) error {
	args := m.Called(ctx, bucket, key, body)
	return args.Error(0)
}
