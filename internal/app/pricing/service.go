package pricing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainpricing "stayly/internal/domain/pricing"
	"stayly/internal/domain/properties"
	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/events"
	"stayly/internal/domain/shared/money"
)

var ErrRepositoryMissing = errors.New("pricing: period repository missing")

// PropertyCatalog is the narrow read the engine needs from the property
// catalog: the fallback nightly rate. Returns properties.ErrNotFound for an
// unknown property.
type PropertyCatalog interface {
	BaseNightly(ctx context.Context, id properties.PropertyID) (money.Money, error)
}

// EventPublisher receives domain events after successful writes.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// Service orchestrates the overlap validator and the stay calculator against
// the period store and the property catalog. All operations are synchronous;
// create and update run a read-validate-write sequence with no transactional
// boundary, so concurrent writers for the same property race (the persistence
// layer is expected to carry the last line of defense).
type Service struct {
	Periods domainpricing.Repository
	Catalog PropertyCatalog
	Events  EventPublisher
	Logger  *slog.Logger
	Clock   func() time.Time
}

type CreatePeriodParams struct {
	PropertyID properties.PropertyID
	Name       string
	Start      time.Time
	End        time.Time
	Nightly    money.Money
}

// CreatePeriod validates the candidate range against the property's existing
// periods and persists it. Fails with ErrInvalidRange on an inverted or empty
// range and with *OverlapError when the candidate intersects a sibling.
func (s *Service) CreatePeriod(ctx context.Context, params CreatePeriodParams) (*domainpricing.PricePeriod, error) {
	if s.Periods == nil {
		return nil, ErrRepositoryMissing
	}
	period, err := domainpricing.NewPricePeriod(domainpricing.CreateParams{
		ID:         domainpricing.PeriodID(uuid.NewString()),
		PropertyID: params.PropertyID,
		Name:       params.Name,
		Start:      params.Start,
		End:        params.End,
		Nightly:    params.Nightly,
		Now:        s.now(),
	})
	if err != nil {
		return nil, err
	}
	siblings, err := s.Periods.ByProperty(ctx, params.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := domainpricing.CheckOverlap(period.Range, siblings, ""); err != nil {
		return nil, err
	}
	if err := s.Periods.Save(ctx, period); err != nil {
		return nil, err
	}
	s.publish(ctx, domainpricing.PeriodCreated{
		PeriodID:   period.ID,
		PropertyID: string(period.PropertyID),
		Range:      period.Range,
		Nightly:    period.Nightly,
		At:         period.CreatedAt,
	})
	return period, nil
}

// UpdatePeriodParams patches a period; nil fields keep current values.
type UpdatePeriodParams struct {
	Name    *string
	Start   *time.Time
	End     *time.Time
	Nightly *money.Money
}

// UpdatePeriod merges the patch onto the stored period and re-runs both
// validations, excluding the period itself from the overlap scan.
func (s *Service) UpdatePeriod(ctx context.Context, id domainpricing.PeriodID, patch UpdatePeriodParams) (*domainpricing.PricePeriod, error) {
	if s.Periods == nil {
		return nil, ErrRepositoryMissing
	}
	period, err := s.Periods.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := period.Range.Start
	end := period.Range.End
	if patch.Start != nil {
		start = *patch.Start
	}
	if patch.End != nil {
		end = *patch.End
	}
	dr, err := daterange.New(start, end)
	if err != nil {
		return nil, domainpricing.ErrInvalidRange
	}
	nightly := period.Nightly
	if patch.Nightly != nil {
		nightly = *patch.Nightly
	}
	if nightly.IsNegative() {
		return nil, domainpricing.ErrNegativeRate
	}

	siblings, err := s.Periods.ByProperty(ctx, period.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := domainpricing.CheckOverlap(dr, siblings, period.ID); err != nil {
		return nil, err
	}

	period.Range = dr
	period.Nightly = nightly
	if patch.Name != nil {
		period.Name = *patch.Name
	}
	period.UpdatedAt = s.now()
	if err := s.Periods.Save(ctx, period); err != nil {
		return nil, err
	}
	s.publish(ctx, domainpricing.PeriodUpdated{
		PeriodID:   period.ID,
		PropertyID: string(period.PropertyID),
		Range:      period.Range,
		Nightly:    period.Nightly,
		At:         period.UpdatedAt,
	})
	return period, nil
}

// DeletePeriod removes a period. Deleting can never create an overlap, so no
// re-validation runs. Returns false when the id is already gone.
func (s *Service) DeletePeriod(ctx context.Context, id domainpricing.PeriodID) (bool, error) {
	if s.Periods == nil {
		return false, ErrRepositoryMissing
	}
	period, err := s.Periods.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainpricing.ErrPeriodNotFound) {
			return false, nil
		}
		return false, err
	}
	deleted, err := s.Periods.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	s.publish(ctx, domainpricing.PeriodDeleted{
		PeriodID:   period.ID,
		PropertyID: string(period.PropertyID),
		At:         s.now(),
	})
	return true, nil
}

// DeletePeriodsForProperty removes every period of a property; used when the
// owning property is removed so no period outlives it.
func (s *Service) DeletePeriodsForProperty(ctx context.Context, propertyID properties.PropertyID) (int, error) {
	if s.Periods == nil {
		return 0, ErrRepositoryMissing
	}
	return s.Periods.DeleteByProperty(ctx, propertyID)
}

// PeriodByID fetches a single period; ErrPeriodNotFound when absent.
func (s *Service) PeriodByID(ctx context.Context, id domainpricing.PeriodID) (*domainpricing.PricePeriod, error) {
	if s.Periods == nil {
		return nil, ErrRepositoryMissing
	}
	return s.Periods.ByID(ctx, id)
}

// PeriodsForProperty lists a property's periods ordered ascending by start date.
func (s *Service) PeriodsForProperty(ctx context.Context, propertyID properties.PropertyID) ([]*domainpricing.PricePeriod, error) {
	if s.Periods == nil {
		return nil, ErrRepositoryMissing
	}
	return s.Periods.ByProperty(ctx, propertyID)
}

// QuoteStay prices the stay [checkIn, checkOut) for a property by overlaying
// its price periods against the base nightly rate. The sole pricing entry
// point of the reservation workflow.
func (s *Service) QuoteStay(ctx context.Context, propertyID properties.PropertyID, checkIn, checkOut time.Time) (domainpricing.Quote, error) {
	var zero domainpricing.Quote
	if s.Periods == nil || s.Catalog == nil {
		return zero, ErrRepositoryMissing
	}
	base, err := s.Catalog.BaseNightly(ctx, propertyID)
	if err != nil {
		return zero, err
	}
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return zero, domainpricing.ErrInvalidRange
	}
	periods, err := s.Periods.Overlapping(ctx, propertyID, dr)
	if err != nil {
		return zero, err
	}
	return domainpricing.StayQuote(base, periods, dr), nil
}

func (s *Service) publish(ctx context.Context, event events.DomainEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil && s.Logger != nil {
		s.Logger.Warn("pricing event publish failed", "event", event.EventName(), "aggregate_id", event.AggregateID(), "error", err)
	}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
