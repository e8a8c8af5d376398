package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"stockconsole/internal/models"
)

func TestInventoryStockLevel_FallbackOrder(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{`{"stockLevel":7,"stock_level":3,"quantity":1}`, 7},
		{`{"stock_level":3,"quantity":1}`, 3},
		{`{"quantity":1}`, 1},
		{`{"stockLevel":null,"quantity":4}`, 4},
		{`{"stockLevel":0,"quantity":4}`, 0},
		{`{}`, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InventoryFields.Int(gjson.Parse(tc.body), "stockLevel"), tc.body)
	}
}

func TestInventoryRecord_WarehouseLabel(t *testing.T) {
	named := InventoryRecord(gjson.Parse(`{"warehouse":{"id":2,"name":"North"}}`))
	assert.Equal(t, "North", named.WarehouseName)

	flat := InventoryRecord(gjson.Parse(`{"warehouseName":"South","warehouseId":3}`))
	assert.Equal(t, "South", flat.WarehouseName)
	assert.Equal(t, models.ID("3"), flat.WarehouseID)

	legacy := InventoryRecord(gjson.Parse(`{"Warehouse":{"Name":"East"}}`))
	assert.Equal(t, "East", legacy.WarehouseName)

	idOnly := InventoryRecord(gjson.Parse(`{"warehouseId":9}`))
	assert.Equal(t, "Warehouse 9", idOnly.WarehouseName)

	none := InventoryRecord(gjson.Parse(`{"stockLevel":1}`))
	assert.Equal(t, UnknownWarehouse, none.WarehouseName)
}

func TestProduct_ReferencesAndDefaults(t *testing.T) {
	p := Product(gjson.Parse(`{
		"id": 1, "name": "Widget", "sku": "W-1",
		"warehouse": {"id": "5"}, "supplier": {"id": 2, "name": "Acme"}
	}`))
	assert.Equal(t, models.ID("1"), p.ID)
	assert.Equal(t, models.ID("5"), p.WarehouseID)
	assert.Equal(t, models.ID("2"), p.SupplierID)
	assert.Equal(t, 0, p.MinStockLevel)
	assert.Nil(t, p.Price)
	assert.Nil(t, p.Description)

	flat := Product(gjson.Parse(`{"id":2,"warehouse_id":6,"supplierId":3,"min_stock_level":4,"unit_price":"2.50","description":"d"}`))
	assert.Equal(t, models.ID("6"), flat.WarehouseID)
	assert.Equal(t, models.ID("3"), flat.SupplierID)
	assert.Equal(t, 4, flat.MinStockLevel)
	require.NotNil(t, flat.Price)
	assert.Equal(t, "2.5", flat.Price.String())
	require.NotNil(t, flat.Description)
	assert.Equal(t, "d", *flat.Description)
}

func TestProduct_NullReferencesAreAbsent(t *testing.T) {
	p := Product(gjson.Parse(`{"id":1,"warehouse":null,"supplier":null,"price":null}`))
	assert.True(t, p.WarehouseID.IsZero())
	assert.True(t, p.SupplierID.IsZero())
	assert.Nil(t, p.Price)
}

func TestWarehouse_NamePlaceholder(t *testing.T) {
	w := Warehouse(gjson.Parse(`{"id":1,"name":"  "}`))
	assert.Equal(t, UnknownWarehouse, w.Name)

	w = Warehouse(gjson.Parse(`{"id":1,"warehouseName":"Depot","address":"Salem"}`))
	assert.Equal(t, "Depot", w.Name)
	assert.Equal(t, "Salem", w.Location)
}

func TestSupplier_OptionalContactFields(t *testing.T) {
	s := Supplier(gjson.Parse(`{"id":4,"name":"Acme","email":"a@acme.test","phone":""}`))
	assert.Equal(t, "Acme", s.Name)
	assert.Nil(t, s.ContactPerson)
	require.NotNil(t, s.Email)
	assert.Equal(t, "a@acme.test", *s.Email)
	assert.Nil(t, s.Phone)
}

func TestStockMovement_Defaults(t *testing.T) {
	m := StockMovement(gjson.Parse(`{"id":1,"quantity":12,"timestamp":"2024-03-01T10:00:00Z","warehouseId":4}`))
	assert.Equal(t, UnknownType, m.AdjustmentType)
	assert.Equal(t, 12, m.AdjustmentQuantity)
	assert.Equal(t, UnknownProduct, m.ProductName)
	assert.Equal(t, "Warehouse 4", m.WarehouseName)
	require.NotNil(t, m.Timestamp)
	assert.Equal(t, 2024, m.Timestamp.Year())

	epoch := StockMovement(gjson.Parse(`{"timestamp":1700000000000}`))
	require.NotNil(t, epoch.Timestamp)
	assert.Equal(t, int64(1700000000), epoch.Timestamp.Unix())
}

func TestTable_UnknownFieldUsesZeroValues(t *testing.T) {
	rec := gjson.Parse(`{"a":1}`)
	assert.Equal(t, "", ProductFields.String(rec, "nope"))
	assert.Equal(t, 0, ProductFields.Int(rec, "nope"))
	assert.Nil(t, ProductFields.Decimal(rec, "nope"))
}
