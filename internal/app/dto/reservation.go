package dto

import (
	"time"

	domainreservations "stayly/internal/domain/reservations"
	"stayly/internal/domain/shared/money"
)

type ReservationResponse struct {
	ID         string      `json:"id"`
	PropertyID string      `json:"property_id"`
	GuestID    string      `json:"guest_id"`
	CheckIn    time.Time   `json:"check_in"`
	CheckOut   time.Time   `json:"check_out"`
	Nights     int         `json:"nights"`
	Guests     int         `json:"guests"`
	Total      money.Money `json:"total"`
	State      string      `json:"state"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func NewReservationResponse(r *domainreservations.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         string(r.ID),
		PropertyID: string(r.PropertyID),
		GuestID:    r.GuestID,
		CheckIn:    r.Range.Start,
		CheckOut:   r.Range.End,
		Nights:     r.Range.Nights(),
		Guests:     r.Guests,
		Total:      r.Total,
		State:      string(r.State),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func NewReservationList(reservations []*domainreservations.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, NewReservationResponse(r))
	}
	return out
}
