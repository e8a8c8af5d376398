package services

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"stockconsole/internal/models"
	"stockconsole/internal/upstream"
)

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) SetSession(ctx context.Context, sess *models.Session, ttl time.Duration) error {
	args := m.Called(ctx, sess, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCacheService) GetPayload(ctx context.Context, scope, resource string) ([]byte, error) {
	args := m.Called(ctx, scope, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheService) SetPayload(ctx context.Context, scope, resource string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, scope, resource, data, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidatePayloads(ctx context.Context, resources ...string) error {
	args := m.Called(ctx, resources)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) Login(ctx context.Context, email, password string) (string, models.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(models.User), args.Error(2)
}

func (m *MockUpstreamClient) List(ctx context.Context, sess models.Session, res upstream.Resource) ([]byte, error) {
	args := m.Called(ctx, sess, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockUpstreamClient) AdjustStock(ctx context.Context, sess models.Session, adj models.StockAdjustment) error {
	args := m.Called(ctx, sess, adj)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
