package handler

import (
	"time"

	"github.com/roamio/tour-booking/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createTourRequest struct {
	Title       string  `json:"title"       validate:"required"`
	City        string  `json:"city"        validate:"required"`
	Address     string  `json:"address"     validate:"required"`
	Distance    float64 `json:"distance"    validate:"gte=0"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Count       int     `json:"count"       validate:"required,gt=0"`
}

// tourResponse is the public catalog view. It omits booked_by and revenue,
// which are internal to booking settlement.
type tourResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Distance    float64   `json:"distance"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTourResponse(t *domain.Tour) tourResponse {
	return tourResponse{
		ID:          t.ID,
		Title:       t.Title,
		City:        t.City,
		Address:     t.Address,
		Distance:    t.Distance,
		Price:       t.Price,
		Description: t.Description,
		Count:       t.Count,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func toTourListResponse(tours []*domain.Tour) []tourResponse {
	out := make([]tourResponse, len(tours))
	for i, t := range tours {
		out[i] = toTourResponse(t)
	}
	return out
}
