package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/services"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
	}
}

// ListProducts returns products, optionally narrowed by ?q, ?warehouse_id
// and ?supplier_id
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var filter services.ProductFilter
	if err := c.Bind(&filter); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	products, err := h.productService.List(c.Request().Context(), sess, filter)
	if err != nil {
		return serviceError(c, err, "list products")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}
