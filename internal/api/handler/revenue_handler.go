package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/core/ports"
)

// RevenueHandler exposes the accrued revenue views.
type RevenueHandler struct {
	service ports.RevenueService
}

func NewRevenueHandler(service ports.RevenueService) *RevenueHandler {
	return &RevenueHandler{service: service}
}

type revenueResponse struct {
	Revenue float64 `json:"revenue"`
}

// Platform handles GET /v1/revenue/platform (admin only).
//
// @Summary      Platform revenue total
// @Tags         revenue
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revenueResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/revenue/platform [get]
func (h *RevenueHandler) Platform(c echo.Context) error {
	if _, _, err := ctxPrincipal(c); err != nil {
		return err
	}

	total, err := h.service.Platform(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueResponse{Revenue: total})
}

// Mine handles GET /v1/revenue/mine (employee only).
//
// @Summary      Accrued revenue for the calling employee
// @Tags         revenue
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revenueResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/revenue/mine [get]
func (h *RevenueHandler) Mine(c echo.Context) error {
	accountID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	revenue, err := h.service.Employee(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueResponse{Revenue: revenue})
}
