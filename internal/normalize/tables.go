package normalize

const (
	UnknownWarehouse = "Unknown Warehouse"
	UnknownProduct   = "Unknown Product"
	UnknownType      = "UNKNOWN"
)

var WarehouseFields = Table{
	"id":       {Paths: []string{"id", "warehouseId", "warehouse_id"}},
	"name":     {Paths: []string{"name", "warehouseName", "Name"}, Default: UnknownWarehouse},
	"location": {Paths: []string{"location", "address", "Location"}},
}

var SupplierFields = Table{
	"id":            {Paths: []string{"id", "supplierId", "supplier_id"}},
	"name":          {Paths: []string{"name", "supplierName", "Name"}},
	"contactPerson": {Paths: []string{"contactPerson", "contact_person"}},
	"email":         {Paths: []string{"email", "Email"}},
	"phone":         {Paths: []string{"phone", "phoneNumber", "phone_number"}},
}

var ProductFields = Table{
	"id":            {Paths: []string{"id", "productId", "product_id"}},
	"name":          {Paths: []string{"name", "productName", "Name"}},
	"sku":           {Paths: []string{"sku", "SKU"}},
	"description":   {Paths: []string{"description"}},
	"minStockLevel": {Paths: []string{"minStockLevel", "min_stock_level"}, Default: "0"},
	"price":         {Paths: []string{"price", "unitPrice", "unit_price"}},
	"warehouseId":   {Paths: []string{"warehouse.id", "warehouseId", "warehouse_id"}},
	"supplierId":    {Paths: []string{"supplier.id", "supplierId", "supplier_id"}},
}

var InventoryFields = Table{
	"id":            {Paths: []string{"id"}},
	"productId":     {Paths: []string{"product.id", "productId", "product_id"}},
	"productName":   {Paths: []string{"product.name", "productName", "product_name"}, Default: UnknownProduct},
	"warehouseId":   {Paths: []string{"warehouse.id", "warehouseId", "warehouse_id", "Warehouse.ID"}},
	"warehouseName": {Paths: []string{"warehouse.name", "warehouseName", "Warehouse.Name"}},
	"stockLevel":    {Paths: []string{"stockLevel", "stock_level", "quantity"}, Default: "0"},
}

var UserFields = Table{
	"id":    {Paths: []string{"id", "userId", "user_id"}},
	"name":  {Paths: []string{"name", "fullName", "username"}},
	"email": {Paths: []string{"email"}},
	"role":  {Paths: []string{"role", "roles.0"}},
}

var HistoryFields = Table{
	"id":                 {Paths: []string{"id"}},
	"timestamp":          {Paths: []string{"timestamp", "createdAt", "created_at"}},
	"productName":        {Paths: []string{"product.name", "productName", "product_name"}, Default: UnknownProduct},
	"warehouseId":        {Paths: []string{"warehouse.id", "warehouseId", "warehouse_id"}},
	"warehouseName":      {Paths: []string{"warehouse.name", "warehouseName", "Warehouse.Name"}},
	"adjustmentType":     {Paths: []string{"adjustmentType", "adjustment_type", "type"}, Default: UnknownType},
	"adjustmentQuantity": {Paths: []string{"adjustmentQuantity", "adjustment_quantity", "quantity"}, Default: "0"},
}
