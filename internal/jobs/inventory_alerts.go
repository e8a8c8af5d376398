package jobs

import (
	"context"
	"log"

	"stockconsole/internal/models"
	"stockconsole/internal/report"
	"stockconsole/internal/services"
)

type InventoryAlertService struct {
	snapshots services.SnapshotService
	reports   services.ReportService
}

type InventoryAlert struct {
	WarehouseID   models.ID
	WarehouseName string
	ProductID     models.ID
	ProductName   string
	SKU           string
	CurrentStock  int
	MinStockLevel int
}

func NewInventoryAlertService(snapshots services.SnapshotService, reports services.ReportService) *InventoryAlertService {
	return &InventoryAlertService{
		snapshots: snapshots,
		reports:   reports,
	}
}

// CheckLowStock aggregates every warehouse and returns the products at or
// below their minimum stock level.
func (a *InventoryAlertService) CheckLowStock(ctx context.Context, sess models.Session) ([]InventoryAlert, error) {
	snap, err := a.snapshots.Fetch(ctx, sess)
	if err != nil {
		log.Printf("Failed to load snapshot for inventory alerts: %v", err)
		return nil, err
	}
	return CollectAlerts(a.reports.AggregateAll(snap)), nil
}

// CollectAlerts flattens the low-stock products of each report in report
// order.
func CollectAlerts(reports []*report.Report) []InventoryAlert {
	var alerts []InventoryAlert
	for _, r := range reports {
		for _, p := range r.LowStockProducts() {
			alerts = append(alerts, InventoryAlert{
				WarehouseID:   r.Warehouse.ID,
				WarehouseName: r.Warehouse.Name,
				ProductID:     p.ID,
				ProductName:   p.Name,
				SKU:           p.SKU,
				CurrentStock:  p.CurrentStock,
				MinStockLevel: p.MinStockLevel,
			})
		}
	}
	return alerts
}

func (a *InventoryAlertService) LogLowStockAlerts(alerts []InventoryAlert) {
	if len(alerts) == 0 {
		log.Println("No low stock alerts to log")
		return
	}

	log.Printf("Low stock alerts: %d products", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Product '%s' (%s) in warehouse %s has %d units (minimum: %d)",
			alert.ProductName,
			alert.SKU,
			alert.WarehouseName,
			alert.CurrentStock,
			alert.MinStockLevel)
	}
}

// ScheduledLowStockCheck is the body of the periodic alerts job.
func (a *InventoryAlertService) ScheduledLowStockCheck(ctx context.Context, sess models.Session) error {
	log.Println("Starting scheduled low stock check")

	alerts, err := a.CheckLowStock(ctx, sess)
	if err != nil {
		log.Printf("Scheduled low stock check failed: %v", err)
		return err
	}
	a.LogLowStockAlerts(alerts)

	log.Println("Scheduled low stock check completed successfully")
	return nil
}
