package services

import (
	"context"
	"strings"

	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
	"stockconsole/internal/upstream"
)

// ProductFilter narrows the product listing. Zero fields match everything.
type ProductFilter struct {
	Query       string    `query:"q"`
	WarehouseID models.ID `query:"warehouse_id"`
	SupplierID  models.ID `query:"supplier_id"`
}

type ProductService interface {
	List(ctx context.Context, sess models.Session, filter ProductFilter) ([]models.Product, error)
}

type productService struct {
	snapshots SnapshotService
}

func NewProductService(snapshots SnapshotService) ProductService {
	return &productService{snapshots: snapshots}
}

func (s *productService) List(ctx context.Context, sess models.Session, filter ProductFilter) ([]models.Product, error) {
	products, err := fetchList(ctx, s.snapshots, sess, upstream.Products, normalize.Products)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	warehouseID := models.ParseID(string(filter.WarehouseID))
	supplierID := models.ParseID(string(filter.SupplierID))
	if query == "" && warehouseID.IsZero() && supplierID.IsZero() {
		return products, nil
	}

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !warehouseID.IsZero() && p.WarehouseID != warehouseID {
			continue
		}
		if !supplierID.IsZero() && p.SupplierID != supplierID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) && !strings.Contains(strings.ToLower(p.SKU), query) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}
