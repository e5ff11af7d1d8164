package dto

import (
	"time"

	domainpricing "stayly/internal/domain/pricing"
	"stayly/internal/domain/shared/money"
)

type PricePeriodResponse struct {
	ID         string      `json:"id"`
	PropertyID string      `json:"property_id"`
	Name       string      `json:"name,omitempty"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	Nightly    money.Money `json:"nightly"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func NewPricePeriodResponse(p *domainpricing.PricePeriod) PricePeriodResponse {
	return PricePeriodResponse{
		ID:         string(p.ID),
		PropertyID: string(p.PropertyID),
		Name:       p.Name,
		StartDate:  p.Range.Start,
		EndDate:    p.Range.End,
		Nightly:    p.Nightly,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func NewPricePeriodList(periods []*domainpricing.PricePeriod) []PricePeriodResponse {
	out := make([]PricePeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, NewPricePeriodResponse(p))
	}
	return out
}

type QuoteResponse struct {
	PropertyID   string      `json:"property_id"`
	CheckIn      time.Time   `json:"check_in"`
	CheckOut     time.Time   `json:"check_out"`
	Nights       int         `json:"nights"`
	PeriodNights int         `json:"period_nights"`
	Total        money.Money `json:"total"`
}

func NewQuoteResponse(propertyID string, checkIn, checkOut time.Time, q domainpricing.Quote) QuoteResponse {
	return QuoteResponse{
		PropertyID:   propertyID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Nights:       q.Nights,
		PeriodNights: q.PeriodNights,
		Total:        q.Total,
	}
}
