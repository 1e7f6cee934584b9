package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/core/ports"
)

// CartHandler handles the pre-booking cart endpoints.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addCartRequest struct {
	TourID string `json:"tour_id" validate:"required"`
}

// Items handles GET /v1/cart.
//
// @Summary      List the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CartItem
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Items(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	items, err := h.service.Items(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add handles POST /v1/cart.
//
// @Summary      Add a tour to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartRequest  true  "Tour reference"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Add(c.Request().Context(), userID, req.TourID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "added to cart"})
}

// Remove handles DELETE /v1/cart/:tourID.
//
// @Summary      Remove a tour from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        tourID  path      string  true  "Tour id"
// @Success      200     {object}  map[string]string
// @Failure      401     {object}  errorResponse
// @Router       /v1/cart/{tourID} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), userID, c.Param("tourID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "removed from cart"})
}
