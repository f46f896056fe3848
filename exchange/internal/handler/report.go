package handler

import (
	"net/http"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/labstack/echo/v4"
)

// CreateReport godoc
// @Summary File a report
// @Tags reports
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.CreateReportRequest true "request"
// @Success 201 {object} model.Report
// @Failure 400,401,403,404 {object} errorResponse
// @Router /reports [post]
func (h *Handler) CreateReport(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req model.CreateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.reportSvc.CreateReport(c.Request().Context(), id.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// ListReports godoc
// @Summary List reports
// @Tags reports
// @Security Bearer
// @Produce json
// @Success 200 {object} model.ListReports
// @Failure 400,401,403,404 {object} errorResponse
// @Router /reports [get]
func (h *Handler) ListReports(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var f model.ReportFilter
	if err := bind(c, &f); err != nil {
		return err
	}
	f.ReporterID = nil
	list, err := h.reportSvc.ListReports(c.Request().Context(), id, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetReport godoc
// @Summary Get a report
// @Tags reports
// @Security Bearer
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} model.Report
// @Failure 400,401,403,404 {object} errorResponse
// @Router /reports/{id} [get]
func (h *Handler) GetReport(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	reportID, err := idParam(c)
	if err != nil {
		return err
	}
	r, err := h.reportSvc.GetReport(c.Request().Context(), id, reportID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// UpdateReportStatus godoc
// @Summary Start investigating a report
// @Tags reports
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.UpdateReportStatusRequest true "request"
// @Param id path string true "id"
// @Success 200 {object} model.Report
// @Failure 400,401,403,404 {object} errorResponse
// @Router /reports/{id}/status [put]
func (h *Handler) UpdateReportStatus(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	reportID, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateReportStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.reportSvc.UpdateReportStatus(c.Request().Context(), id, reportID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// ResolveReport godoc
// @Summary Resolve a report
// @Tags reports
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.ResolveReportRequest true "request"
// @Param id path string true "id"
// @Success 200 {object} model.ResolveResponse
// @Failure 400,401,403,404 {object} errorResponse
// @Router /reports/{id}/resolve [put]
func (h *Handler) ResolveReport(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	reportID, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.ResolveReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.reportSvc.ResolveReport(c.Request().Context(), id, reportID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
