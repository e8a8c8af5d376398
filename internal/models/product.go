package models

import "github.com/shopspring/decimal"

// Product as served by the upstream catalog. Warehouse and supplier are
// references by id; resolving them is the caller's job.
type Product struct {
	ID            ID               `json:"id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Description   *string          `json:"description,omitempty"`
	MinStockLevel int              `json:"minStockLevel"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	WarehouseID   ID               `json:"warehouseId,omitempty"`
	SupplierID    ID               `json:"supplierId,omitempty"`
}

// PriceOrZero returns the unit price, treating a missing price as zero.
func (p Product) PriceOrZero() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	return *p.Price
}
