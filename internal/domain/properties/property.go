package properties

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayly/internal/domain/shared/money"
)

var (
	ErrNotFound        = errors.New("properties: property not found")
	ErrIDRequired      = errors.New("properties: id is required")
	ErrTitleRequired   = errors.New("properties: title is required")
	ErrGuestsLimit     = errors.New("properties: guests limit must be at least 1")
	ErrBaseRate        = errors.New("properties: base nightly rate must be non-negative")
	ErrAddressRequired = errors.New("properties: address must be provided")
)

type PropertyID string
type HostID string

type PropertyState string

const (
	PropertyDraft    PropertyState = "DRAFT"
	PropertyActive   PropertyState = "ACTIVE"
	PropertyArchived PropertyState = "ARCHIVED"
)

type Address struct {
	Line1   string
	City    string
	Country string
}

func (a Address) Valid() bool {
	return strings.TrimSpace(a.Line1) != "" && strings.TrimSpace(a.City) != "" && strings.TrimSpace(a.Country) != ""
}

// Property is a rentable unit. BaseNightly is the fallback rate charged for
// any night not covered by a price period.
type Property struct {
	ID          PropertyID
	Host        HostID
	Title       string
	Description string
	Address     Address
	GuestsLimit int
	BaseNightly money.Money
	State       PropertyState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	ByHost(ctx context.Context, host HostID) ([]*Property, error)
	Save(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id PropertyID) (bool, error)
}

type CreateParams struct {
	ID          PropertyID
	Host        HostID
	Title       string
	Description string
	Address     Address
	GuestsLimit int
	BaseNightly money.Money
	Now         time.Time
}

func NewProperty(params CreateParams) (*Property, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.GuestsLimit < 1 {
		return nil, ErrGuestsLimit
	}
	if params.BaseNightly.IsNegative() {
		return nil, ErrBaseRate
	}
	if !params.Address.Valid() {
		return nil, ErrAddressRequired
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Property{
		ID:          params.ID,
		Host:        params.Host,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Address:     params.Address,
		GuestsLimit: params.GuestsLimit,
		BaseNightly: params.BaseNightly,
		State:       PropertyDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
