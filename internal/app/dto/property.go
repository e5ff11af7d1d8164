package dto

import (
	"time"

	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
)

type AddressPayload struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type PropertyResponse struct {
	ID          string         `json:"id"`
	Host        string         `json:"host"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Address     AddressPayload `json:"address"`
	GuestsLimit int            `json:"guests_limit"`
	BaseNightly money.Money    `json:"base_nightly"`
	State       string         `json:"state"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewPropertyResponse(p *domainproperties.Property) PropertyResponse {
	return PropertyResponse{
		ID:          string(p.ID),
		Host:        string(p.Host),
		Title:       p.Title,
		Description: p.Description,
		Address:     AddressPayload{Line1: p.Address.Line1, City: p.Address.City, Country: p.Address.Country},
		GuestsLimit: p.GuestsLimit,
		BaseNightly: p.BaseNightly,
		State:       string(p.State),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPropertyList(properties []*domainproperties.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, NewPropertyResponse(p))
	}
	return out
}
