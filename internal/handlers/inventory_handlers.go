package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
)

// InventoryHandlers handles inventory-related HTTP requests
type InventoryHandlers struct {
	inventoryService services.InventoryService
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(inventoryService services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{
		inventoryService: inventoryService,
	}
}

// ListInventory returns one page of the filtered inventory view.
// Query: q, status (all|low|critical|ok), sort_by (product|warehouse|stock|status),
// sort_order (asc|desc), page, page_size.
func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var filter models.InventorySearchFilter
	if err := c.Bind(&filter); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	page, err := h.inventoryService.List(c.Request().Context(), sess, filter)
	if err != nil {
		return serviceError(c, err, "list inventory")
	}
	return c.JSON(http.StatusOK, page)
}

// GetDashboard returns stock totals and the low and critical counts
func (h *InventoryHandlers) GetDashboard(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	stats, err := h.inventoryService.Dashboard(c.Request().Context(), sess)
	if err != nil {
		return serviceError(c, err, "load dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}

// GetHistory returns the stock movement log
func (h *InventoryHandlers) GetHistory(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	history, err := h.inventoryService.History(c.Request().Context(), sess)
	if err != nil {
		return serviceError(c, err, "load stock history")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": history,
		"total":   len(history),
	})
}

// AdjustStock records a STOCK_IN or STOCK_OUT movement upstream
func (h *InventoryHandlers) AdjustStock(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req models.StockAdjustment
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.inventoryService.AdjustStock(c.Request().Context(), sess, req); err != nil {
		return serviceError(c, err, "adjust stock")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Stock adjusted successfully",
	})
}
