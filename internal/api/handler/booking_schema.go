package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// dateLayout is the wire format for booking dates.
const dateLayout = "2006-01-02"

type createBookingRequest struct {
	TourID    string `json:"tour_id"    validate:"required"`
	Name      string `json:"name"       validate:"required"`
	Phone     string `json:"phone"      validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
	Adults    int    `json:"adults"     validate:"required,gte=1"`
	Children  int    `json:"children"   validate:"gte=0"`
}

type bookingResponse struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tour_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Adults    int       `json:"adults"`
	Children  int       `json:"children"`
	TotalCost float64   `json:"total_cost"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookingInput(req createBookingRequest, userID string) (ports.CreateBookingInput, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return ports.CreateBookingInput{}, echo.NewHTTPError(http.StatusBadRequest, "start_date must be formatted YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return ports.CreateBookingInput{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must be formatted YYYY-MM-DD")
	}

	return ports.CreateBookingInput{
		UserID:    userID,
		TourID:    req.TourID,
		Name:      req.Name,
		Phone:     req.Phone,
		StartDate: start,
		EndDate:   end,
		Adults:    req.Adults,
		Children:  req.Children,
	}, nil
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		TourID:    b.TourID,
		Name:      b.Name,
		Phone:     b.Phone,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		Adults:    b.Adults,
		Children:  b.Children,
		TotalCost: b.TotalCost,
		CreatedAt: b.CreatedAt.UTC(),
	}
}
