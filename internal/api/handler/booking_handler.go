package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/api/metrics"
	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// BookingHandler handles the booking workflow endpoints.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Book handles POST /book.
//
// @Summary      Book a tour
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /book [post]
func (h *BookingHandler) Book(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.BookingsRejectedTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := toBookingInput(req, userID)
	if err != nil {
		metrics.BookingsRejectedTotal.WithLabelValues("invalid_input").Inc()
		return err
	}

	booking, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		countRejection(err)
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	metrics.BookingRevenueTotal.Add(booking.TotalCost)

	return c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// Cancel handles DELETE /cancel/:id.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /cancel/{id} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Cancel(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.BookingsCancelledTotal.Inc()
	metrics.BookingRevenueTotal.Sub(booking.TotalCost)

	return c.JSON(http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// ListMine handles GET /v1/bookings.
//
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, out)
}

func countRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientCapacity):
		metrics.BookingsRejectedTotal.WithLabelValues("insufficient_capacity").Inc()
	case errors.Is(err, domain.ErrAlreadyBooked):
		metrics.BookingsRejectedTotal.WithLabelValues("already_booked").Inc()
	case errors.Is(err, domain.ErrTourNotFound):
		metrics.BookingsRejectedTotal.WithLabelValues("tour_not_found").Inc()
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.BookingsRejectedTotal.WithLabelValues("invalid_input").Inc()
	}
}
