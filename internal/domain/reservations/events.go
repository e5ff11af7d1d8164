package reservations

import (
	"time"

	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/money"
)

type ReservationRequested struct {
	ReservationID ReservationID
	PropertyID    string
	GuestID       string
	Range         daterange.DateRange
	Total         money.Money
	At            time.Time
}

func (e ReservationRequested) EventName() string     { return "reservation.requested" }
func (e ReservationRequested) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRequested) OccurredAt() time.Time { return e.At }

type ReservationRescheduled struct {
	ReservationID ReservationID
	PropertyID    string
	Range         daterange.DateRange
	Total         money.Money
	At            time.Time
}

func (e ReservationRescheduled) EventName() string     { return "reservation.rescheduled" }
func (e ReservationRescheduled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRescheduled) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID
	PropertyID    string
	At            time.Time
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }
