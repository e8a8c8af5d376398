// Package report builds the per-warehouse stock report from independently
// fetched collections. Everything here is pure: no I/O, no errors, and a
// report is a fresh value on every run.
package report

import (
	"time"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"stockconsole/internal/models"
)

func init() {
	// Money is emitted as a JSON number, as the inventory API sends it.
	decimal.MarshalJSONWithoutQuotes = true
}

// NoSupplierKey groups products whose supplier is absent or unresolvable.
const NoSupplierKey = "no-supplier"

// EnrichedProduct is a product joined with its stock at the selected
// warehouse and its resolved supplier.
type EnrichedProduct struct {
	models.Product
	CurrentStock int              `json:"currentStock"`
	Supplier     *models.Supplier `json:"supplier"`
}

// IsLowStock reports whether stock is at or below a positive minimum.
func (p EnrichedProduct) IsLowStock() bool {
	return p.MinStockLevel > 0 && p.CurrentStock <= p.MinStockLevel
}

// StockValue is price × current stock, with a missing price counting as 0.
func (p EnrichedProduct) StockValue() decimal.Decimal {
	return p.PriceOrZero().Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

// Status is the label used in exports.
func (p EnrichedProduct) Status() string {
	if p.IsLowStock() {
		return "LOW STOCK"
	}
	return "OK"
}

type SupplierGroup struct {
	Supplier models.Supplier   `json:"supplier"`
	Products []EnrichedProduct `json:"products"`
}

// Report is the denormalized view of one warehouse. Groups iterate in the
// order their first product was encountered.
type Report struct {
	Warehouse       models.Warehouse                                `json:"warehouse"`
	Groups          *orderedmap.OrderedMap[string, *SupplierGroup] `json:"productsBySupplier"`
	TotalProducts   int                                             `json:"totalProducts"`
	TotalStockValue decimal.Decimal                                 `json:"totalStockValue"`
	LowStockCount   int                                             `json:"lowStockProducts"`
	GeneratedAt     time.Time                                       `json:"generatedAt"`
}

// Group returns the group stored under key.
func (r *Report) Group(key string) (*SupplierGroup, bool) {
	return r.Groups.Get(key)
}

// EachGroup visits groups in report order until fn returns false.
func (r *Report) EachGroup(fn func(key string, g *SupplierGroup) bool) {
	for pair := r.Groups.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Products returns every enriched product in group order.
func (r *Report) Products() []EnrichedProduct {
	out := make([]EnrichedProduct, 0, r.TotalProducts)
	r.EachGroup(func(_ string, g *SupplierGroup) bool {
		out = append(out, g.Products...)
		return true
	})
	return out
}

// LowStockProducts returns the products counted by LowStockCount.
func (r *Report) LowStockProducts() []EnrichedProduct {
	var out []EnrichedProduct
	for _, p := range r.Products() {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
