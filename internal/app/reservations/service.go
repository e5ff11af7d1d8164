package reservations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainpricing "stayly/internal/domain/pricing"
	"stayly/internal/domain/properties"
	domainreservations "stayly/internal/domain/reservations"
	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/events"
	"stayly/internal/domain/shared/money"
)

var (
	ErrDependenciesMissing = errors.New("reservations: service dependencies missing")
	ErrGuestsLimitExceeded = errors.New("reservations: guests exceed the property limit")
)

// PricingEngine is the single pricing entry point the workflow consumes.
type PricingEngine interface {
	QuoteStay(ctx context.Context, propertyID properties.PropertyID, checkIn, checkOut time.Time) (domainpricing.Quote, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// Service creates and reschedules reservations, quoting each stay through the
// pricing engine.
type Service struct {
	Reservations domainreservations.Repository
	Properties   properties.Repository
	Pricing      PricingEngine
	Events       EventPublisher
	Logger       *slog.Logger
	Clock        func() time.Time
}

type CreateParams struct {
	PropertyID properties.PropertyID
	GuestID    string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainreservations.Reservation, error) {
	if s.Reservations == nil || s.Properties == nil || s.Pricing == nil {
		return nil, ErrDependenciesMissing
	}
	property, err := s.Properties.ByID(ctx, params.PropertyID)
	if err != nil {
		return nil, err
	}
	if params.Guests > property.GuestsLimit {
		return nil, ErrGuestsLimitExceeded
	}
	dr, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	total, err := s.quoteTotal(ctx, property, dr)
	if err != nil {
		return nil, err
	}
	reservation, err := domainreservations.NewReservation(domainreservations.CreateParams{
		ID:         domainreservations.ReservationID(uuid.NewString()),
		PropertyID: property.ID,
		GuestID:    params.GuestID,
		Range:      dr,
		Guests:     params.Guests,
		Total:      total,
		Now:        s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, reservation); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, reservation)
	if s.Logger != nil {
		s.Logger.Info("reservation created", "reservation_id", reservation.ID, "property_id", reservation.PropertyID, "nights", dr.Nights(), "total", reservation.Total)
	}
	return reservation, nil
}

// Reschedule moves a reservation to new dates and re-quotes the total.
func (s *Service) Reschedule(ctx context.Context, id domainreservations.ReservationID, checkIn, checkOut time.Time) (*domainreservations.Reservation, error) {
	if s.Reservations == nil || s.Properties == nil || s.Pricing == nil {
		return nil, ErrDependenciesMissing
	}
	reservation, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	property, err := s.Properties.ByID(ctx, reservation.PropertyID)
	if err != nil {
		return nil, err
	}
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	total, err := s.quoteTotal(ctx, property, dr)
	if err != nil {
		return nil, err
	}
	if err := reservation.Reschedule(dr, total, s.now()); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, reservation); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, reservation)
	return reservation, nil
}

func (s *Service) Confirm(ctx context.Context, id domainreservations.ReservationID) (*domainreservations.Reservation, error) {
	return s.transition(ctx, id, func(r *domainreservations.Reservation) error {
		return r.Confirm(s.now())
	})
}

func (s *Service) Cancel(ctx context.Context, id domainreservations.ReservationID) (*domainreservations.Reservation, error) {
	return s.transition(ctx, id, func(r *domainreservations.Reservation) error {
		return r.Cancel(s.now())
	})
}

func (s *Service) ByGuest(ctx context.Context, guestID string) ([]*domainreservations.Reservation, error) {
	if s.Reservations == nil {
		return nil, ErrDependenciesMissing
	}
	return s.Reservations.ByGuest(ctx, guestID)
}

// quoteTotal asks the engine for a stay quote. A total of exactly zero is
// treated as "no periods apply" and charged as nights times the base rate.
// Long-standing observable behavior: it also fires when the base rate is
// legitimately zero, in which case the product is zero anyway.
func (s *Service) quoteTotal(ctx context.Context, property *properties.Property, dr daterange.DateRange) (money.Money, error) {
	quote, err := s.Pricing.QuoteStay(ctx, property.ID, dr.Start, dr.End)
	if err != nil {
		return money.Money{}, err
	}
	if quote.Total.IsZero() {
		return property.BaseNightly.Multiply(int64(dr.Nights())), nil
	}
	return quote.Total, nil
}

func (s *Service) transition(ctx context.Context, id domainreservations.ReservationID, apply func(*domainreservations.Reservation) error) (*domainreservations.Reservation, error) {
	if s.Reservations == nil {
		return nil, ErrDependenciesMissing
	}
	reservation, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(reservation); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, reservation); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, reservation)
	return reservation, nil
}

func (s *Service) drainEvents(ctx context.Context, reservation *domainreservations.Reservation) {
	if s.Events == nil {
		reservation.ClearEvents()
		return
	}
	for _, event := range reservation.PendingEvents() {
		if err := s.Events.Publish(ctx, event); err != nil && s.Logger != nil {
			s.Logger.Warn("reservation event publish failed", "event", event.EventName(), "aggregate_id", event.AggregateID(), "error", err)
		}
	}
	reservation.ClearEvents()
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
