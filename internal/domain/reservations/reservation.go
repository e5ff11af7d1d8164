package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayly/internal/domain/properties"
	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/events"
	"stayly/internal/domain/shared/money"
)

var (
	ErrNotFound       = errors.New("reservations: reservation not found")
	ErrIDRequired     = errors.New("reservations: id is required")
	ErrGuestRequired  = errors.New("reservations: guest id is required")
	ErrInvalidGuests  = errors.New("reservations: guests count must be positive")
	ErrInvalidState   = errors.New("reservations: invalid state transition")
	ErrNegativeTotal  = errors.New("reservations: total must be non-negative")
)

type ReservationID string

type State string

const (
	StateRequested State = "REQUESTED"
	StateConfirmed State = "CONFIRMED"
	StateCancelled State = "CANCELLED"
)

// Reservation is a guest's stay at a property. Total is quoted by the pricing
// engine at creation and re-quoted whenever the dates change.
type Reservation struct {
	ID         ReservationID
	PropertyID properties.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Total      money.Money
	State      State
	CreatedAt  time.Time
	UpdatedAt  time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	ByGuest(ctx context.Context, guestID string) ([]*Reservation, error)
	ByProperty(ctx context.Context, propertyID properties.PropertyID) ([]*Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
}

type CreateParams struct {
	ID         ReservationID
	PropertyID properties.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Total      money.Money
	Now        time.Time
}

func NewReservation(params CreateParams) (*Reservation, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.GuestID) == "" {
		return nil, ErrGuestRequired
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Total.IsNegative() {
		return nil, ErrNegativeTotal
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	r := &Reservation{
		ID:         params.ID,
		PropertyID: params.PropertyID,
		GuestID:    params.GuestID,
		Range:      params.Range,
		Guests:     params.Guests,
		Total:      params.Total,
		State:      StateRequested,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.Record(ReservationRequested{ReservationID: r.ID, PropertyID: string(r.PropertyID), GuestID: r.GuestID, Range: r.Range, Total: r.Total, At: now})
	return r, nil
}

// Reschedule moves the stay to a new range with a freshly quoted total.
func (r *Reservation) Reschedule(dr daterange.DateRange, total money.Money, now time.Time) error {
	if r.State == StateCancelled {
		return ErrInvalidState
	}
	if err := dr.Validate(); err != nil {
		return err
	}
	if total.IsNegative() {
		return ErrNegativeTotal
	}
	r.Range = dr
	r.Total = total
	r.touch(now)
	r.Record(ReservationRescheduled{ReservationID: r.ID, PropertyID: string(r.PropertyID), Range: dr, Total: total, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.State != StateRequested {
		return ErrInvalidState
	}
	r.State = StateConfirmed
	r.touch(now)
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	if r.State == StateCancelled {
		return ErrInvalidState
	}
	r.State = StateCancelled
	r.touch(now)
	r.Record(ReservationCancelled{ReservationID: r.ID, PropertyID: string(r.PropertyID), At: r.UpdatedAt})
	return nil
}

func (r *Reservation) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	r.UpdatedAt = now.UTC()
}
