package handler

import (
	"net/http"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/labstack/echo/v4"
)

// CreateExchange godoc
// @Summary Request a book
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.CreateExchangeRequest true "request"
// @Success 201 {object} model.CreateExchangeResponse
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges [post]
func (h *Handler) CreateExchange(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req model.CreateExchangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.exchangeSvc.CreateExchange(c.Request().Context(), id.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// ListExchanges godoc
// @Summary List the caller's exchanges
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Success 200 {object} model.ListExchanges
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges [get]
func (h *Handler) ListExchanges(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var f model.ExchangeFilter
	if err := bind(c, &f); err != nil {
		return err
	}
	list, err := h.exchangeSvc.ListExchanges(c.Request().Context(), id.UserID, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetExchange godoc
// @Summary Get an exchange
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} model.Exchange
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges/{id} [get]
func (h *Handler) GetExchange(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	exchangeID, err := idParam(c)
	if err != nil {
		return err
	}
	ex, err := h.exchangeSvc.GetExchange(c.Request().Context(), id.UserID, exchangeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ex)
}

// AcceptExchange godoc
// @Summary Accept a pending request
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} model.Exchange
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges/{id}/accept [put]
func (h *Handler) AcceptExchange(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	exchangeID, err := idParam(c)
	if err != nil {
		return err
	}
	ex, err := h.exchangeSvc.AcceptExchange(c.Request().Context(), id.UserID, exchangeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ex)
}

// DeclineExchange godoc
// @Summary Decline a pending request
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.DeclineRequest true "request"
// @Param id path string true "id"
// @Success 200 {object} model.DeclineResponse
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges/{id}/decline [put]
func (h *Handler) DeclineExchange(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	exchangeID, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.DeclineRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.exchangeSvc.DeclineExchange(c.Request().Context(), id.UserID, exchangeID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// ConfirmExchange godoc
// @Summary Confirm receipt of the book
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.ConfirmRequest true "request"
// @Param id path string true "id"
// @Success 200 {object} model.ConfirmResponse
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges/{id}/confirm [put]
func (h *Handler) ConfirmExchange(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	exchangeID, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.ConfirmRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.exchangeSvc.ConfirmExchange(c.Request().Context(), id.UserID, exchangeID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// CancelExchange godoc
// @Summary Withdraw a request
// @Tags exchanges
// @Security Bearer
// @Produce json
// @Accept json
// @Param request body model.CancelRequest true "request"
// @Param id path string true "id"
// @Success 200 {object} model.Exchange
// @Failure 400,401,403,404 {object} errorResponse
// @Router /exchanges/{id}/cancel [put]
func (h *Handler) CancelExchange(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	exchangeID, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.CancelRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ex, err := h.exchangeSvc.CancelExchange(c.Request().Context(), id.UserID, exchangeID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ex)
}
