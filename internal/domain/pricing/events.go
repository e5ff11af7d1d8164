package pricing

import (
	"time"

	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/money"
)

type PeriodCreated struct {
	PeriodID   PeriodID
	PropertyID string
	Range      daterange.DateRange
	Nightly    money.Money
	At         time.Time
}

func (e PeriodCreated) EventName() string     { return "pricing.period_created" }
func (e PeriodCreated) AggregateID() string   { return string(e.PeriodID) }
func (e PeriodCreated) OccurredAt() time.Time { return e.At }

type PeriodUpdated struct {
	PeriodID   PeriodID
	PropertyID string
	Range      daterange.DateRange
	Nightly    money.Money
	At         time.Time
}

func (e PeriodUpdated) EventName() string     { return "pricing.period_updated" }
func (e PeriodUpdated) AggregateID() string   { return string(e.PeriodID) }
func (e PeriodUpdated) OccurredAt() time.Time { return e.At }

type PeriodDeleted struct {
	PeriodID   PeriodID
	PropertyID string
	At         time.Time
}

func (e PeriodDeleted) EventName() string     { return "pricing.period_deleted" }
func (e PeriodDeleted) AggregateID() string   { return string(e.PeriodID) }
func (e PeriodDeleted) OccurredAt() time.Time { return e.At }
