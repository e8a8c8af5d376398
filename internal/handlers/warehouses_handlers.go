package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
)

// WarehouseHandlers handles warehouse-related HTTP requests
type WarehouseHandlers struct {
	warehouseService services.WarehouseService
}

// NewWarehouseHandlers creates a new warehouse handlers instance
func NewWarehouseHandlers(warehouseService services.WarehouseService) *WarehouseHandlers {
	return &WarehouseHandlers{
		warehouseService: warehouseService,
	}
}

// ListWarehouses returns every warehouse the upstream reports
func (h *WarehouseHandlers) ListWarehouses(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	warehouses, err := h.warehouseService.List(c.Request().Context(), sess)
	if err != nil {
		return serviceError(c, err, "list warehouses")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"warehouses": warehouses,
		"total":      len(warehouses),
	})
}

// GetWarehouse returns one warehouse by id
func (h *WarehouseHandlers) GetWarehouse(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	id := models.ParseID(c.Param("id"))
	if id.IsZero() {
		return common.SendValidationError(c, "id", "warehouse id is required")
	}

	warehouse, err := h.warehouseService.GetByID(c.Request().Context(), sess, id)
	if err != nil {
		return serviceError(c, err, "get warehouse")
	}
	if warehouse == nil {
		return common.SendNotFoundError(c, "Warehouse")
	}
	return c.JSON(http.StatusOK, warehouse)
}
