package services

import (
	"context"

	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
	"stockconsole/internal/upstream"
)

type WarehouseService interface {
	List(ctx context.Context, sess models.Session) ([]models.Warehouse, error)
	GetByID(ctx context.Context, sess models.Session, id models.ID) (*models.Warehouse, error)
}

type warehouseService struct {
	snapshots SnapshotService
}

func NewWarehouseService(snapshots SnapshotService) WarehouseService {
	return &warehouseService{
		snapshots: snapshots,
	}
}

func (s *warehouseService) List(ctx context.Context, sess models.Session) ([]models.Warehouse, error) {
	return fetchList(ctx, s.snapshots, sess, upstream.Warehouses, normalize.Warehouses)
}

// GetByID returns nil when no warehouse matches.
func (s *warehouseService) GetByID(ctx context.Context, sess models.Session, id models.ID) (*models.Warehouse, error) {
	warehouses, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range warehouses {
		if warehouses[i].ID == id {
			return &warehouses[i], nil
		}
	}
	return nil, nil
}
