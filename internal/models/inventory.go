package models

import "time"

const (
	StockStatusCritical = "critical"
	StockStatusLow      = "low"
	StockStatusOK       = "ok"

	// Dashboard thresholds on absolute stock, independent of a product's
	// configured minimum.
	CriticalStockThreshold = 5
	LowStockThreshold      = 10
)

// InventoryRecord is the quantity of one product at one warehouse.
type InventoryRecord struct {
	ID            ID     `json:"id"`
	ProductID     ID     `json:"productId"`
	ProductName   string `json:"productName"`
	WarehouseID   ID     `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	StockLevel    int    `json:"stockLevel"`
}

// Status buckets the record's stock level for the inventory dashboard.
func (r InventoryRecord) Status() string {
	switch {
	case r.StockLevel < CriticalStockThreshold:
		return StockStatusCritical
	case r.StockLevel < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

// InventorySearchFilter holds search and filter criteria for the inventory view
type InventorySearchFilter struct {
	Query     string `query:"q"`      // Matches product name or warehouse label
	Status    string `query:"status"` // all, low, critical, ok
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}

// InventoryPage is one page of the filtered inventory view.
type InventoryPage struct {
	Items      []InventoryRecord `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

const (
	AdjustmentStockIn  = "STOCK_IN"
	AdjustmentStockOut = "STOCK_OUT"
)

// StockAdjustment is the payload forwarded to the upstream adjust endpoint.
type StockAdjustment struct {
	ProductID          int64  `json:"product_id"`
	WarehouseID        int64  `json:"warehouse_id"`
	AdjustmentQuantity int64  `json:"adjustment_quantity"`
	AdjustmentType     string `json:"adjustment_type"`
}

// StockMovement is one row of the upstream stock history.
type StockMovement struct {
	ID                 ID         `json:"id"`
	Timestamp          *time.Time `json:"timestamp,omitempty"`
	ProductName        string     `json:"productName"`
	WarehouseName      string     `json:"warehouseName"`
	AdjustmentType     string     `json:"adjustmentType"`
	AdjustmentQuantity int        `json:"adjustmentQuantity"`
}

// DashboardStats summarises the inventory across every warehouse.
type DashboardStats struct {
	TotalRecords  int `json:"totalRecords"`
	TotalUnits    int `json:"totalUnits"`
	LowStock      int `json:"lowStock"`
	CriticalStock int `json:"criticalStock"`
}
