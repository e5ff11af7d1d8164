package pricing

import (
	"sort"

	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/money"
)

// Quote is the outcome of pricing a stay. PeriodNights counts the nights
// priced by a period rather than the base rate, letting callers distinguish
// "total is zero" from "no period applied".
type Quote struct {
	Total        money.Money
	Nights       int
	PeriodNights int
}

// Covered reports whether at least one night was priced by a period.
func (q Quote) Covered() bool {
	return q.PeriodNights > 0
}

// StayQuote prices a stay by overlaying price periods against the base
// nightly rate, one night at a time. Every night in [stay.Start, stay.End)
// is charged the rate of the first period containing it, in ascending start
// order, or the base rate when none does.
//
// The no-overlap invariant means at most one period can contain a night; the
// ascending-start scan only matters as a deterministic pick if the store was
// corrupted upstream. Periods not touching the stay are skipped by the
// containment test, so over-fetching cannot change the result.
func StayQuote(base money.Money, periods []*PricePeriod, stay daterange.DateRange) Quote {
	sorted := make([]*PricePeriod, 0, len(periods))
	for _, p := range periods {
		if p != nil {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start.Before(sorted[j].Range.Start)
	})

	quote := Quote{Total: money.Money{Currency: base.Currency}}
	for cur := daterange.Day(stay.Start); cur.Before(daterange.Day(stay.End)); cur = cur.AddDate(0, 0, 1) {
		nightly := base.Amount
		for _, period := range sorted {
			if period.Covers(cur) {
				nightly = period.Nightly.Amount
				quote.PeriodNights++
				break
			}
		}
		quote.Total.Amount += nightly
		quote.Nights++
	}
	return quote
}
