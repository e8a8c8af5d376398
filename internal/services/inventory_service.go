package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"stockconsole/internal/analytics"
	"stockconsole/internal/common"
	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
	"stockconsole/internal/upstream"
)

const maxAdjustmentQuantity = 1000000

// ValidationError names the offending field of a rejected request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type InventoryService interface {
	List(ctx context.Context, sess models.Session, filter models.InventorySearchFilter) (*models.InventoryPage, error)
	Dashboard(ctx context.Context, sess models.Session) (*models.DashboardStats, error)
	History(ctx context.Context, sess models.Session) ([]models.StockMovement, error)
	AdjustStock(ctx context.Context, sess models.Session, adj models.StockAdjustment) error
}

type inventoryService struct {
	client    UpstreamClient
	snapshots SnapshotService
}

func NewInventoryService(client UpstreamClient, snapshots SnapshotService) InventoryService {
	return &inventoryService{
		client:    client,
		snapshots: snapshots,
	}
}

func (s *inventoryService) records(ctx context.Context, sess models.Session) ([]models.InventoryRecord, error) {
	return fetchList(ctx, s.snapshots, sess, upstream.Inventory, normalize.Inventory)
}

func (s *inventoryService) List(ctx context.Context, sess models.Session, filter models.InventorySearchFilter) (*models.InventoryPage, error) {
	if !analytics.ValidStatusFilter(filter.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be one of all, low, critical, ok"}
	}
	if !analytics.ValidSortField(filter.SortBy) {
		return nil, &ValidationError{Field: "sort_by", Message: "must be one of product, warehouse, stock, status"}
	}

	records, err := s.records(ctx, sess)
	if err != nil {
		return nil, err
	}
	page := analytics.QueryInventory(records, filter)
	return &page, nil
}

func (s *inventoryService) Dashboard(ctx context.Context, sess models.Session) (*models.DashboardStats, error) {
	records, err := s.records(ctx, sess)
	if err != nil {
		return nil, err
	}
	stats := analytics.Dashboard(records)
	return &stats, nil
}

func (s *inventoryService) History(ctx context.Context, sess models.Session) ([]models.StockMovement, error) {
	return fetchList(ctx, s.snapshots, sess, upstream.StockHistory, normalize.StockHistory)
}

func (s *inventoryService) AdjustStock(ctx context.Context, sess models.Session, adj models.StockAdjustment) error {
	if err := validateAdjustment(&adj); err != nil {
		return err
	}

	if err := s.client.AdjustStock(ctx, sess, adj); err != nil {
		return err
	}

	log.Printf("DEBUG: %s adjusted product %d at warehouse %d by %s %d",
		sess.User.Email, adj.ProductID, adj.WarehouseID, adj.AdjustmentType, adj.AdjustmentQuantity)
	s.snapshots.Invalidate(ctx, upstream.Inventory, upstream.StockHistory)
	return nil
}

func validateAdjustment(adj *models.StockAdjustment) error {
	if err := common.ValidatePositiveInteger(adj.ProductID, "product_id", 1<<53); err != nil {
		return &ValidationError{Field: "product_id", Message: err.Error()}
	}
	if err := common.ValidatePositiveInteger(adj.WarehouseID, "warehouse_id", 1<<53); err != nil {
		return &ValidationError{Field: "warehouse_id", Message: err.Error()}
	}
	if err := common.ValidatePositiveInteger(adj.AdjustmentQuantity, "adjustment_quantity", maxAdjustmentQuantity); err != nil {
		return &ValidationError{Field: "adjustment_quantity", Message: err.Error()}
	}

	adj.AdjustmentType = strings.ToUpper(strings.TrimSpace(adj.AdjustmentType))
	if adj.AdjustmentType != models.AdjustmentStockIn && adj.AdjustmentType != models.AdjustmentStockOut {
		return &ValidationError{Field: "adjustment_type", Message: "must be STOCK_IN or STOCK_OUT"}
	}
	return nil
}
