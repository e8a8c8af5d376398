package report

import (
	"time"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"stockconsole/internal/models"
)

// Aggregator joins warehouses, products, inventory and suppliers into a
// Report. The zero value is ready to use.
type Aggregator struct {
	// Now stamps GeneratedAt; time.Now when nil.
	Now func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{Now: time.Now}
}

// Aggregate builds the report for selected. It returns nil when no
// warehouse carries that id, which callers treat as "nothing to show".
// Nil collections are empty collections.
func (a *Aggregator) Aggregate(
	warehouses []models.Warehouse,
	products []models.Product,
	inventory []models.InventoryRecord,
	suppliers []models.Supplier,
	selected models.ID,
) *Report {
	if selected.IsZero() {
		return nil
	}
	warehouse, ok := findWarehouse(warehouses, selected)
	if !ok {
		return nil
	}

	var stock []models.InventoryRecord
	for _, rec := range inventory {
		if rec.WarehouseID == selected {
			stock = append(stock, rec)
		}
	}

	r := &Report{
		Warehouse:       warehouse,
		Groups:          orderedmap.New[string, *SupplierGroup](),
		TotalStockValue: decimal.Zero,
		GeneratedAt:     a.now(),
	}

	for _, p := range products {
		if p.WarehouseID != selected {
			continue
		}
		ep := EnrichedProduct{
			Product:      p,
			CurrentStock: currentStock(stock, p.ID),
			Supplier:     findSupplier(suppliers, p.SupplierID),
		}

		key, label := NoSupplierKey, models.NoSupplier()
		if ep.Supplier != nil {
			key, label = ep.Supplier.ID.String(), *ep.Supplier
		}
		g, ok := r.Groups.Get(key)
		if !ok {
			g = &SupplierGroup{Supplier: label}
			r.Groups.Set(key, g)
		}
		g.Products = append(g.Products, ep)

		r.TotalProducts++
		r.TotalStockValue = r.TotalStockValue.Add(ep.StockValue())
		if ep.IsLowStock() {
			r.LowStockCount++
		}
	}
	return r
}

func (a *Aggregator) now() time.Time {
	if a == nil || a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func findWarehouse(warehouses []models.Warehouse, id models.ID) (models.Warehouse, bool) {
	for _, w := range warehouses {
		if w.ID == id {
			return w, true
		}
	}
	return models.Warehouse{}, false
}

// currentStock takes the first matching record; duplicates per
// (product, warehouse) are ignored.
func currentStock(stock []models.InventoryRecord, productID models.ID) int {
	if productID.IsZero() {
		return 0
	}
	for _, rec := range stock {
		if rec.ProductID == productID {
			return rec.StockLevel
		}
	}
	return 0
}

func findSupplier(suppliers []models.Supplier, id models.ID) *models.Supplier {
	if id.IsZero() {
		return nil
	}
	for i := range suppliers {
		if suppliers[i].ID == id {
			s := suppliers[i]
			return &s
		}
	}
	return nil
}
