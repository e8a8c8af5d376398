package services

import (
	"context"

	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
	"stockconsole/internal/upstream"
)

type SupplierService interface {
	List(ctx context.Context, sess models.Session) ([]models.Supplier, error)
}

type supplierService struct {
	snapshots SnapshotService
}

func NewSupplierService(snapshots SnapshotService) SupplierService {
	return &supplierService{snapshots: snapshots}
}

func (s *supplierService) List(ctx context.Context, sess models.Session) ([]models.Supplier, error) {
	return fetchList(ctx, s.snapshots, sess, upstream.Suppliers, normalize.Suppliers)
}
