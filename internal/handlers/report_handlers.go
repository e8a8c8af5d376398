package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
)

// ReportHandlers serves warehouse reports and their CSV exports
type ReportHandlers struct {
	reportService services.ReportService
}

func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

func warehouseParam(c echo.Context) models.ID {
	return models.ParseID(c.Param("id"))
}

// GetWarehouseReport aggregates a fresh report for the warehouse
func (h *ReportHandlers) GetWarehouseReport(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	id := warehouseParam(c)
	if id.IsZero() {
		return common.SendValidationError(c, "id", "warehouse id is required")
	}

	r, err := h.reportService.Generate(c.Request().Context(), sess, id)
	if err != nil {
		return serviceError(c, err, "build warehouse report")
	}
	return c.JSON(http.StatusOK, r)
}

// GetCurrentReport returns the report of the caller's latest request
func (h *ReportHandlers) GetCurrentReport(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	r := h.reportService.Current(sess.ID)
	if r == nil {
		return common.SendNotFoundError(c, "Report")
	}
	return c.JSON(http.StatusOK, r)
}

// DownloadCSV returns the report as a CSV attachment
func (h *ReportHandlers) DownloadCSV(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	id := warehouseParam(c)
	if id.IsZero() {
		return common.SendValidationError(c, "id", "warehouse id is required")
	}

	name, data, err := h.reportService.CSV(c.Request().Context(), sess, id)
	if err != nil {
		return serviceError(c, err, "export warehouse report")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportReport uploads the CSV to object storage and returns a download link
func (h *ReportHandlers) ExportReport(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	id := warehouseParam(c)
	if id.IsZero() {
		return common.SendValidationError(c, "id", "warehouse id is required")
	}

	result, err := h.reportService.Export(c.Request().Context(), sess, id)
	if err != nil {
		return serviceError(c, err, "export warehouse report")
	}
	return c.JSON(http.StatusCreated, result)
}
