package normalize

import (
	"github.com/tidwall/gjson"

	"stockconsole/internal/models"
)

func Warehouse(rec gjson.Result) models.Warehouse {
	return models.Warehouse{
		ID:       WarehouseFields.ID(rec, "id"),
		Name:     WarehouseFields.String(rec, "name"),
		Location: WarehouseFields.String(rec, "location"),
	}
}

func Supplier(rec gjson.Result) models.Supplier {
	return models.Supplier{
		ID:            SupplierFields.ID(rec, "id"),
		Name:          SupplierFields.String(rec, "name"),
		ContactPerson: SupplierFields.OptionalString(rec, "contactPerson"),
		Email:         SupplierFields.OptionalString(rec, "email"),
		Phone:         SupplierFields.OptionalString(rec, "phone"),
	}
}

func Product(rec gjson.Result) models.Product {
	return models.Product{
		ID:            ProductFields.ID(rec, "id"),
		Name:          ProductFields.String(rec, "name"),
		SKU:           ProductFields.String(rec, "sku"),
		Description:   ProductFields.OptionalString(rec, "description"),
		MinStockLevel: ProductFields.Int(rec, "minStockLevel"),
		Price:         ProductFields.Decimal(rec, "price"),
		WarehouseID:   ProductFields.ID(rec, "warehouseId"),
		SupplierID:    ProductFields.ID(rec, "supplierId"),
	}
}

func InventoryRecord(rec gjson.Result) models.InventoryRecord {
	warehouseID := InventoryFields.ID(rec, "warehouseId")
	return models.InventoryRecord{
		ID:            InventoryFields.ID(rec, "id"),
		ProductID:     InventoryFields.ID(rec, "productId"),
		ProductName:   InventoryFields.String(rec, "productName"),
		WarehouseID:   warehouseID,
		WarehouseName: warehouseLabel(InventoryFields.String(rec, "warehouseName"), warehouseID),
		StockLevel:    InventoryFields.Int(rec, "stockLevel"),
	}
}

func User(rec gjson.Result) models.User {
	return models.User{
		ID:    UserFields.ID(rec, "id"),
		Name:  UserFields.String(rec, "name"),
		Email: UserFields.String(rec, "email"),
		Role:  UserFields.String(rec, "role"),
	}
}

func StockMovement(rec gjson.Result) models.StockMovement {
	return models.StockMovement{
		ID:                 HistoryFields.ID(rec, "id"),
		Timestamp:          HistoryFields.Time(rec, "timestamp"),
		ProductName:        HistoryFields.String(rec, "productName"),
		WarehouseName:      warehouseLabel(HistoryFields.String(rec, "warehouseName"), HistoryFields.ID(rec, "warehouseId")),
		AdjustmentType:     HistoryFields.String(rec, "adjustmentType"),
		AdjustmentQuantity: HistoryFields.Int(rec, "adjustmentQuantity"),
	}
}

// warehouseLabel falls back to "Warehouse <id>" when a record carries only
// the warehouse reference.
func warehouseLabel(name string, id models.ID) string {
	if name != "" {
		return name
	}
	if !id.IsZero() {
		return "Warehouse " + id.String()
	}
	return UnknownWarehouse
}

func Warehouses(body []byte) []models.Warehouse { return Decode(body, Warehouse) }

func Suppliers(body []byte) []models.Supplier { return Decode(body, Supplier) }

func Products(body []byte) []models.Product { return Decode(body, Product) }

func Inventory(body []byte) []models.InventoryRecord { return Decode(body, InventoryRecord) }

func Users(body []byte) []models.User { return Decode(body, User) }

func StockHistory(body []byte) []models.StockMovement { return Decode(body, StockMovement) }
