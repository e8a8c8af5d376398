package handlers

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"stockconsole/internal/jobs/background"
	"stockconsole/internal/models"
	"stockconsole/internal/report"
	"stockconsole/internal/services"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) List(ctx context.Context, sess models.Session, filter models.InventorySearchFilter) (*models.InventoryPage, error) {
	args := m.Called(ctx, sess, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryPage), args.Error(1)
}

func (m *MockInventoryService) Dashboard(ctx context.Context, sess models.Session) (*models.DashboardStats, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockInventoryService) History(ctx context.Context, sess models.Session) ([]models.StockMovement, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockMovement), args.Error(1)
}

func (m *MockInventoryService) AdjustStock(ctx context.Context, sess models.Session, adj models.StockAdjustment) error {
	args := m.Called(ctx, sess, adj)
	return args.Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, sess models.Session, warehouseID models.ID) (*report.Report, error) {
	args := m.Called(ctx, sess, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Report), args.Error(1)
}

func (m *MockReportService) Current(sessionID string) *report.Report {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*report.Report)
}

func (m *MockReportService) CSV(ctx context.Context, sess models.Session, warehouseID models.ID) (string, []byte, error) {
	args := m.Called(ctx, sess, warehouseID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *MockReportService) Export(ctx context.Context, sess models.Session, warehouseID models.ID) (*services.ExportResult, error) {
	args := m.Called(ctx, sess, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ExportResult), args.Error(1)
}

func (m *MockReportService) AggregateAll(snap *services.Snapshot) []*report.Report {
	args := m.Called(snap)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*report.Report)
}

func (m *MockReportService) Forget(sessionID string) {
	m.Called(sessionID)
}

func (m *MockReportService) Prune(maxIdle time.Duration) int {
	args := m.Called(maxIdle)
	return args.Int(0)
}

type MockWarehouseService struct {
	mock.Mock
}

func (m *MockWarehouseService) List(ctx context.Context, sess models.Session) ([]models.Warehouse, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Warehouse), args.Error(1)
}

func (m *MockWarehouseService) GetByID(ctx context.Context, sess models.Session, id models.ID) (*models.Warehouse, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, sess models.Session, filter services.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, sess, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type MockJobRunner struct {
	mock.Mock
}

func (m *MockJobRunner) GetJobStatus() []background.JobStatus {
	args := m.Called()
	return args.Get(0).([]background.JobStatus)
}

func (m *MockJobRunner) RunNow(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) SetSession(ctx context.Context, sess *models.Session, ttl time.Duration) error {
	return m.Called(ctx, sess, ttl).Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockCacheService) GetPayload(ctx context.Context, scope, resource string) ([]byte, error) {
	args := m.Called(ctx, scope, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheService) SetPayload(ctx context.Context, scope, resource string, data []byte, ttl time.Duration) error {
	return m.Called(ctx, scope, resource, data, ttl).Error(0)
}

func (m *MockCacheService) InvalidatePayloads(ctx context.Context, resources ...string) error {
	return m.Called(ctx, resources).Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	return m.Called(ctx, bucketName, objectName, reader, objectSize, contentType).Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	return m.Called(ctx, bucketName, objectName).Error(0)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	return m.Called(ctx, bucketName).Error(0)
}
