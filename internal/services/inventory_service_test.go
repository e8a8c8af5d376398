package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stockconsole/internal/models"
	"stockconsole/internal/upstream"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	client  *MockUpstreamClient
	cache   *MockCacheService
	service InventoryService
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.client = &MockUpstreamClient{}
	suite.cache = &MockCacheService{}
	suite.service = NewInventoryService(suite.client, NewSnapshotService(suite.client, suite.cache, 0))
}

func (suite *InventoryServiceTestSuite) TearDownTest() {
	suite.client.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (suite *InventoryServiceTestSuite) TestList_FiltersRecords() {
	ctx := context.Background()
	suite.client.On("List", ctx, testSession, upstream.Inventory).Return([]byte(inventoryBody), nil).Once()

	page, err := suite.service.List(ctx, testSession, models.InventorySearchFilter{Status: "critical"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, page.TotalItems)
	assert.Equal(suite.T(), 4, page.Items[0].StockLevel)
}

func (suite *InventoryServiceTestSuite) TestList_RejectsUnknownStatus() {
	_, err := suite.service.List(context.Background(), testSession, models.InventorySearchFilter{Status: "empty"})
	var verr *ValidationError
	assert.ErrorAs(suite.T(), err, &verr)
	assert.Equal(suite.T(), "status", verr.Field)
}

func (suite *InventoryServiceTestSuite) TestList_UpstreamFailure() {
	ctx := context.Background()
	suite.client.On("List", ctx, testSession, upstream.Inventory).Return(nil, &upstream.StatusError{Code: 401}).Once()

	_, err := suite.service.List(ctx, testSession, models.InventorySearchFilter{})
	assert.ErrorIs(suite.T(), err, upstream.ErrUnauthorized)
}

func (suite *InventoryServiceTestSuite) TestDashboard() {
	ctx := context.Background()
	suite.client.On("List", ctx, testSession, upstream.Inventory).Return([]byte(inventoryBody), nil).Once()

	stats, err := suite.service.Dashboard(ctx, testSession)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &models.DashboardStats{TotalRecords: 2, TotalUnits: 24, LowStock: 1, CriticalStock: 1}, stats)
}

func (suite *InventoryServiceTestSuite) TestHistory() {
	ctx := context.Background()
	body := `[{"id":1,"product":{"name":"Bolt"},"warehouse":{"name":"Main"},"adjustment_type":"STOCK_IN","adjustment_quantity":5}]`
	suite.client.On("List", ctx, testSession, upstream.StockHistory).Return([]byte(body), nil).Once()

	rows, err := suite.service.History(ctx, testSession)
	assert.NoError(suite.T(), err)
	if assert.Len(suite.T(), rows, 1) {
		assert.Equal(suite.T(), "STOCK_IN", rows[0].AdjustmentType)
		assert.Equal(suite.T(), 5, rows[0].AdjustmentQuantity)
	}
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_ForwardsAndInvalidates() {
	ctx := context.Background()
	want := models.StockAdjustment{ProductID: 10, WarehouseID: 1, AdjustmentQuantity: 3, AdjustmentType: models.AdjustmentStockOut}
	suite.client.On("AdjustStock", ctx, testSession, want).Return(nil).Once()
	suite.cache.On("InvalidatePayloads", ctx, []string{"/inventory", "/inventory/history"}).Return(nil).Once()

	err := suite.service.AdjustStock(ctx, testSession, models.StockAdjustment{
		ProductID: 10, WarehouseID: 1, AdjustmentQuantity: 3, AdjustmentType: " stock_out ",
	})
	assert.NoError(suite.T(), err)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_Validation() {
	tests := []struct {
		name  string
		adj   models.StockAdjustment
		field string
	}{
		{"missing product", models.StockAdjustment{WarehouseID: 1, AdjustmentQuantity: 1, AdjustmentType: "STOCK_IN"}, "product_id"},
		{"negative warehouse", models.StockAdjustment{ProductID: 1, WarehouseID: -2, AdjustmentQuantity: 1, AdjustmentType: "STOCK_IN"}, "warehouse_id"},
		{"zero quantity", models.StockAdjustment{ProductID: 1, WarehouseID: 1, AdjustmentType: "STOCK_IN"}, "adjustment_quantity"},
		{"huge quantity", models.StockAdjustment{ProductID: 1, WarehouseID: 1, AdjustmentQuantity: maxAdjustmentQuantity + 1, AdjustmentType: "STOCK_IN"}, "adjustment_quantity"},
		{"bad type", models.StockAdjustment{ProductID: 1, WarehouseID: 1, AdjustmentQuantity: 1, AdjustmentType: "TRANSFER"}, "adjustment_type"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.service.AdjustStock(context.Background(), testSession, tt.adj)
			var verr *ValidationError
			if assert.ErrorAs(suite.T(), err, &verr) {
				assert.Equal(suite.T(), tt.field, verr.Field)
			}
		})
	}
	suite.client.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_UpstreamErrorKeepsCache() {
	ctx := context.Background()
	adj := models.StockAdjustment{ProductID: 1, WarehouseID: 1, AdjustmentQuantity: 1, AdjustmentType: models.AdjustmentStockIn}
	suite.client.On("AdjustStock", ctx, testSession, adj).Return(errors.New("boom")).Once()

	assert.Error(suite.T(), suite.service.AdjustStock(ctx, testSession, adj))
	suite.cache.AssertNotCalled(suite.T(), "InvalidatePayloads", mock.Anything, mock.Anything)
}
