package memory

import (
	"context"
	"sort"
	"sync"

	domainpricing "stayly/internal/domain/pricing"
	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/daterange"
)

// PeriodRepository keeps price periods in memory, indexed by property.
// The mutex serializes the engine's read-validate-write sequence, which is
// the only overlap guard the memory backend offers.
type PeriodRepository struct {
	mu    sync.RWMutex
	items map[domainpricing.PeriodID]*domainpricing.PricePeriod
}

func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{
		items: make(map[domainpricing.PeriodID]*domainpricing.PricePeriod),
	}
}

func (r *PeriodRepository) ByID(ctx context.Context, id domainpricing.PeriodID) (*domainpricing.PricePeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	period, ok := r.items[id]
	if !ok {
		return nil, domainpricing.ErrPeriodNotFound
	}
	return clonePeriod(period), nil
}

func (r *PeriodRepository) ByProperty(ctx context.Context, propertyID domainproperties.PropertyID) ([]*domainpricing.PricePeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpricing.PricePeriod, 0)
	for _, period := range r.items {
		if period.PropertyID == propertyID {
			out = append(out, clonePeriod(period))
		}
	}
	sortPeriods(out)
	return out, nil
}

func (r *PeriodRepository) Overlapping(ctx context.Context, propertyID domainproperties.PropertyID, dr daterange.DateRange) ([]*domainpricing.PricePeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpricing.PricePeriod, 0)
	for _, period := range r.items {
		if period.PropertyID == propertyID && period.Range.Overlaps(dr) {
			out = append(out, clonePeriod(period))
		}
	}
	sortPeriods(out)
	return out, nil
}

func (r *PeriodRepository) Save(ctx context.Context, period *domainpricing.PricePeriod) error {
	if period == nil {
		return domainpricing.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[period.ID] = clonePeriod(period)
	return nil
}

func (r *PeriodRepository) Delete(ctx context.Context, id domainpricing.PeriodID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *PeriodRepository) DeleteByProperty(ctx context.Context, propertyID domainproperties.PropertyID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, period := range r.items {
		if period.PropertyID == propertyID {
			delete(r.items, id)
			count++
		}
	}
	return count, nil
}

func sortPeriods(periods []*domainpricing.PricePeriod) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Range.Start.Before(periods[j].Range.Start)
	})
}

func clonePeriod(p *domainpricing.PricePeriod) *domainpricing.PricePeriod {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

var _ domainpricing.Repository = (*PeriodRepository)(nil)
