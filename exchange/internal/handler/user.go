package handler

import (
	"net/http"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/labstack/echo/v4"
)

type pageQuery struct {
	Page  int `query:"page" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

// Points godoc
// @Summary Balance and ledger history
// @Tags users
// @Security Bearer
// @Produce json
// @Success 200 {object} model.PointsSummary
// @Failure 400,401,403,404 {object} errorResponse
// @Router /users/me/points [get]
func (h *Handler) Points(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var q pageQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	summary, err := h.userSvc.Points(c.Request().Context(), id.UserID, model.Paging{Page: q.Page, PageSize: q.Limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// TrustScore godoc
// @Summary Trust score
// @Tags users
// @Security Bearer
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} model.TrustScore
// @Failure 400,401,403,404 {object} errorResponse
// @Router /users/{id}/trust [get]
func (h *Handler) TrustScore(c echo.Context) error {
	if _, err := identity(c); err != nil {
		return err
	}
	userID, err := idParam(c)
	if err != nil {
		return err
	}
	score, err := h.userSvc.TrustScore(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, score)
}

// Assessment godoc
// @Summary Anti-abuse assessment
// @Tags users
// @Security Bearer
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} model.Assessment
// @Failure 400,401,403,404 {object} errorResponse
// @Router /users/{id}/assessment [get]
func (h *Handler) Assessment(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	if !id.IsModerator() {
		return errs.Forbidden("only moderators can view assessments")
	}
	userID, err := idParam(c)
	if err != nil {
		return err
	}
	a, err := h.userSvc.AssessUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
