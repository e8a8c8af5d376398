package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/services"
)

type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	suppliers, err := h.supplierService.List(c.Request().Context(), sess)
	if err != nil {
		return serviceError(c, err, "list suppliers")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"total":     len(suppliers),
	})
}
