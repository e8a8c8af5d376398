package jobs

import (
	"context"
	"log"
	"time"

	"stockconsole/internal/analytics"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
	"stockconsole/internal/upstream"
)

// snapshotResources are the cached collections the refresh job rewarms.
var snapshotResources = []upstream.Resource{
	upstream.Warehouses,
	upstream.Products,
	upstream.Inventory,
	upstream.Suppliers,
}

// SnapshotRefreshService drops the cached report collections and fetches
// them again so the next report request is served warm.
type SnapshotRefreshService struct {
	snapshots services.SnapshotService
}

type SnapshotRefreshResult struct {
	Warehouses    int
	Products      int
	Dashboard     models.DashboardStats
	LastRefreshAt time.Time
}

func NewSnapshotRefreshService(snapshots services.SnapshotService) *SnapshotRefreshService {
	return &SnapshotRefreshService{snapshots: snapshots}
}

func (a *SnapshotRefreshService) Refresh(ctx context.Context, sess models.Session) (*SnapshotRefreshResult, error) {
	a.snapshots.Invalidate(ctx, snapshotResources...)

	snap, err := a.snapshots.Fetch(ctx, sess)
	if err != nil {
		log.Printf("Snapshot refresh failed: %v", err)
		return nil, err
	}

	result := &SnapshotRefreshResult{
		Warehouses:    len(snap.Warehouses),
		Products:      len(snap.Products),
		Dashboard:     analytics.Dashboard(snap.Inventory),
		LastRefreshAt: snap.FetchedAt,
	}
	log.Printf("Snapshot refreshed: warehouses=%d products=%d stock records=%d (low=%d critical=%d)",
		result.Warehouses, result.Products, result.Dashboard.TotalRecords,
		result.Dashboard.LowStock, result.Dashboard.CriticalStock)
	return result, nil
}
