package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayly/internal/domain/properties"
	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/money"
)

var (
	ErrInvalidRange   = errors.New("pricing: start date must precede end date")
	ErrNegativeRate   = errors.New("pricing: nightly rate must be non-negative")
	ErrPeriodNotFound = errors.New("pricing: price period not found")
	ErrIDRequired     = errors.New("pricing: period id is required")
	ErrPropertyID     = errors.New("pricing: property id is required")
)

// OverlapError reports a conflict between a candidate range and an existing
// period of the same property.
type OverlapError struct {
	ConflictID    PeriodID
	ConflictRange daterange.DateRange
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("pricing: this period overlaps an existing price period (conflicts with %s)", e.ConflictID)
}

type PeriodID string

// PricePeriod overrides a property's base nightly rate for every night in
// [Range.Start, Range.End). The end date is exclusive: a period ending on a
// date does not charge that night.
type PricePeriod struct {
	ID         PeriodID
	PropertyID properties.PropertyID
	Name       string
	Range      daterange.DateRange
	Nightly    money.Money
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the day falls within the period's half-open range.
func (p *PricePeriod) Covers(day time.Time) bool {
	return p.Range.ContainsDate(day)
}

// Repository is the price period store consumed by the engine.
type Repository interface {
	ByID(ctx context.Context, id PeriodID) (*PricePeriod, error)
	// ByProperty returns all periods of a property ordered ascending by start date.
	ByProperty(ctx context.Context, propertyID properties.PropertyID) ([]*PricePeriod, error)
	// Overlapping returns the periods of a property intersecting the half-open range.
	Overlapping(ctx context.Context, propertyID properties.PropertyID, dr daterange.DateRange) ([]*PricePeriod, error)
	Save(ctx context.Context, period *PricePeriod) error
	Delete(ctx context.Context, id PeriodID) (bool, error)
	DeleteByProperty(ctx context.Context, propertyID properties.PropertyID) (int, error)
}

type CreateParams struct {
	ID         PeriodID
	PropertyID properties.PropertyID
	Name       string
	Start      time.Time
	End        time.Time
	Nightly    money.Money
	Now        time.Time
}

func NewPricePeriod(params CreateParams) (*PricePeriod, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.PropertyID)) == "" {
		return nil, ErrPropertyID
	}
	dr, err := daterange.New(params.Start, params.End)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if params.Nightly.IsNegative() {
		return nil, ErrNegativeRate
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &PricePeriod{
		ID:         params.ID,
		PropertyID: params.PropertyID,
		Name:       strings.TrimSpace(params.Name),
		Range:      dr,
		Nightly:    params.Nightly,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CheckOverlap decides whether a candidate range may be inserted among the
// existing periods of one property without violating the no-overlap invariant.
// The period identified by exclude is skipped, which lets updates avoid
// comparing a period against itself. Shared boundaries are adjacency, not
// overlap, and pass. Pure function; callers fetch siblings and persist.
func CheckOverlap(candidate daterange.DateRange, existing []*PricePeriod, exclude PeriodID) error {
	if err := candidate.Validate(); err != nil {
		return ErrInvalidRange
	}
	for _, period := range existing {
		if period == nil || period.ID == exclude {
			continue
		}
		if candidate.Overlaps(period.Range) {
			return &OverlapError{ConflictID: period.ID, ConflictRange: period.Range}
		}
	}
	return nil
}
