package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/core/ports"
)

// TourHandler handles catalog requests.
type TourHandler struct {
	service ports.TourService
}

func NewTourHandler(service ports.TourService) *TourHandler {
	return &TourHandler{service: service}
}

// Create handles POST /v1/tours (employee only).
//
// @Summary      Publish a new tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTourRequest  true  "Tour details"
// @Success      201   {object}  tourResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/tours [post]
func (h *TourHandler) Create(c echo.Context) error {
	ownerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tour, err := h.service.Create(c.Request().Context(), ports.CreateTourInput{
		Title:       req.Title,
		City:        req.City,
		Address:     req.Address,
		Distance:    req.Distance,
		Price:       req.Price,
		Description: req.Description,
		Count:       req.Count,
		OwnerID:     ownerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTourResponse(tour))
}

// List handles GET /v1/tours.
//
// @Summary      List all tours
// @Tags         tours
// @Produce      json
// @Success      200  {array}  tourResponse
// @Router       /v1/tours [get]
func (h *TourHandler) List(c echo.Context) error {
	tours, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTourListResponse(tours))
}

// Get handles GET /v1/tours/:id.
//
// @Summary      Get a tour by id
// @Tags         tours
// @Produce      json
// @Param        id   path      string  true  "Tour id"
// @Success      200  {object}  tourResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tours/{id} [get]
func (h *TourHandler) Get(c echo.Context) error {
	tour, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTourResponse(tour))
}

// Search handles GET /v1/tours/search?q=.
//
// @Summary      Search tours by title or city
// @Tags         tours
// @Produce      json
// @Param        q    query     string  false  "Case-insensitive substring"
// @Success      200  {array}   tourResponse
// @Router       /v1/tours/search [get]
func (h *TourHandler) Search(c echo.Context) error {
	tours, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTourListResponse(tours))
}

// Delete handles DELETE /v1/tours/:id (owning employee only).
//
// @Summary      Delete an unbooked tour
// @Tags         tours
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tour id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/tours/{id} [delete]
func (h *TourHandler) Delete(c echo.Context) error {
	ownerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tour deleted"})
}
