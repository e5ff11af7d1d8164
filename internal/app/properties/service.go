package properties

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
)

var ErrDependenciesMissing = errors.New("properties: service dependencies missing")

// PeriodPurger removes the price periods of a property when it is deleted.
type PeriodPurger interface {
	DeletePeriodsForProperty(ctx context.Context, propertyID domainproperties.PropertyID) (int, error)
}

// Service manages the property catalog.
type Service struct {
	Properties domainproperties.Repository
	Periods    PeriodPurger
	Logger     *slog.Logger
	Clock      func() time.Time
}

type CreateParams struct {
	Host        domainproperties.HostID
	Title       string
	Description string
	Address     domainproperties.Address
	GuestsLimit int
	BaseNightly money.Money
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainproperties.Property, error) {
	if s.Properties == nil {
		return nil, ErrDependenciesMissing
	}
	property, err := domainproperties.NewProperty(domainproperties.CreateParams{
		ID:          domainproperties.PropertyID(uuid.NewString()),
		Host:        params.Host,
		Title:       params.Title,
		Description: params.Description,
		Address:     params.Address,
		GuestsLimit: params.GuestsLimit,
		BaseNightly: params.BaseNightly,
		Now:         s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Properties.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

type UpdateParams struct {
	Title       *string
	Description *string
	GuestsLimit *int
	BaseNightly *money.Money
}

func (s *Service) Update(ctx context.Context, id domainproperties.PropertyID, patch UpdateParams) (*domainproperties.Property, error) {
	if s.Properties == nil {
		return nil, ErrDependenciesMissing
	}
	property, err := s.Properties.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, domainproperties.ErrTitleRequired
		}
		property.Title = *patch.Title
	}
	if patch.Description != nil {
		property.Description = *patch.Description
	}
	if patch.GuestsLimit != nil {
		if *patch.GuestsLimit < 1 {
			return nil, domainproperties.ErrGuestsLimit
		}
		property.GuestsLimit = *patch.GuestsLimit
	}
	if patch.BaseNightly != nil {
		if patch.BaseNightly.IsNegative() {
			return nil, domainproperties.ErrBaseRate
		}
		property.BaseNightly = *patch.BaseNightly
	}
	property.UpdatedAt = s.now()
	if err := s.Properties.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *Service) ByID(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	if s.Properties == nil {
		return nil, ErrDependenciesMissing
	}
	return s.Properties.ByID(ctx, id)
}

func (s *Service) ByHost(ctx context.Context, host domainproperties.HostID) ([]*domainproperties.Property, error) {
	if s.Properties == nil {
		return nil, ErrDependenciesMissing
	}
	return s.Properties.ByHost(ctx, host)
}

// Delete removes a property and purges its price periods so none outlives it.
func (s *Service) Delete(ctx context.Context, id domainproperties.PropertyID) (bool, error) {
	if s.Properties == nil {
		return false, ErrDependenciesMissing
	}
	deleted, err := s.Properties.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if s.Periods != nil {
		purged, err := s.Periods.DeletePeriodsForProperty(ctx, id)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Error("period purge failed after property delete", "property_id", id, "error", err)
			}
			return true, err
		}
		if s.Logger != nil && purged > 0 {
			s.Logger.Info("price periods purged", "property_id", id, "count", purged)
		}
	}
	return true, nil
}

// NewID mints a property identifier; exported for fixtures.
func NewID() domainproperties.PropertyID {
	return domainproperties.PropertyID(uuid.NewString())
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
