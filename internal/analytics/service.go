// Package analytics derives the inventory dashboard and the filtered,
// sorted and paginated inventory view from normalized stock records.
package analytics

import (
	"sort"
	"strings"

	"stockconsole/internal/common"
	"stockconsole/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	SortByProduct   = "product"
	SortByWarehouse = "warehouse"
	SortByStock     = "stock"
	SortByStatus    = "status"

	StatusAll = "all"
)

// Dashboard counts records, units and the low and critical buckets. A
// critical record is also counted as low.
func Dashboard(records []models.InventoryRecord) models.DashboardStats {
	stats := models.DashboardStats{TotalRecords: len(records)}
	for _, r := range records {
		stats.TotalUnits += r.StockLevel
		if r.StockLevel < models.LowStockThreshold {
			stats.LowStock++
		}
		if r.StockLevel < models.CriticalStockThreshold {
			stats.CriticalStock++
		}
	}
	return stats
}

// ValidStatusFilter reports whether s names a stock status bucket or "all".
func ValidStatusFilter(s string) bool {
	switch strings.ToLower(s) {
	case "", StatusAll, models.StockStatusLow, models.StockStatusCritical, models.StockStatusOK:
		return true
	}
	return false
}

// ValidSortField reports whether s is a sortable inventory column.
func ValidSortField(s string) bool {
	switch strings.ToLower(s) {
	case "", SortByProduct, SortByWarehouse, SortByStock, SortByStatus:
		return true
	}
	return false
}

// QueryInventory filters, sorts and paginates records without modifying
// them. Records default to warehouse order, ascending.
func QueryInventory(records []models.InventoryRecord, filter models.InventorySearchFilter) models.InventoryPage {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	status := strings.ToLower(filter.Status)

	matched := make([]models.InventoryRecord, 0, len(records))
	for _, r := range records {
		if status != "" && status != StatusAll && r.Status() != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(r.ProductName), query) &&
			!strings.Contains(strings.ToLower(r.WarehouseName), query) {
			continue
		}
		matched = append(matched, r)
	}

	less := sortKey(strings.ToLower(filter.SortBy))
	desc := common.ValidateSortOrder(filter.SortOrder) == "desc"
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	page, size := common.ValidatePaginationParams(filter.Page, filter.PageSize, DefaultPageSize, MaxPageSize)
	result := models.InventoryPage{
		Items:      []models.InventoryRecord{},
		Page:       page,
		PageSize:   size,
		TotalItems: len(matched),
		TotalPages: (len(matched) + size - 1) / size,
	}
	start := (page - 1) * size
	if start < len(matched) {
		end := min(start+size, len(matched))
		result.Items = matched[start:end]
	}
	return result
}

func sortKey(field string) func(a, b models.InventoryRecord) bool {
	switch field {
	case SortByProduct:
		return func(a, b models.InventoryRecord) bool {
			return strings.ToLower(a.ProductName) < strings.ToLower(b.ProductName)
		}
	case SortByStock:
		return func(a, b models.InventoryRecord) bool { return a.StockLevel < b.StockLevel }
	case SortByStatus:
		return func(a, b models.InventoryRecord) bool { return statusRank(a) < statusRank(b) }
	default:
		return func(a, b models.InventoryRecord) bool {
			return strings.ToLower(a.WarehouseName) < strings.ToLower(b.WarehouseName)
		}
	}
}

func statusRank(r models.InventoryRecord) int {
	switch r.Status() {
	case models.StockStatusCritical:
		return 0
	case models.StockStatusLow:
		return 1
	default:
		return 2
	}
}
