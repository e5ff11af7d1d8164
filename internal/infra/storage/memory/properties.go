package memory

import (
	"context"
	"sort"
	"sync"

	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
)

// PropertyRepository is an in-memory property catalog.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperties.PropertyID]*domainproperties.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{
		items: make(map[domainproperties.PropertyID]*domainproperties.Property),
	}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.items[id]
	if !ok {
		return nil, domainproperties.ErrNotFound
	}
	return cloneProperty(property), nil
}

func (r *PropertyRepository) ByHost(ctx context.Context, host domainproperties.HostID) ([]*domainproperties.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainproperties.Property, 0)
	for _, property := range r.items {
		if property.Host == host {
			out = append(out, cloneProperty(property))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *PropertyRepository) Save(ctx context.Context, property *domainproperties.Property) error {
	if property == nil {
		return domainproperties.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[property.ID] = cloneProperty(property)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id domainproperties.PropertyID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// BaseNightly satisfies the pricing engine's property catalog port.
func (r *PropertyRepository) BaseNightly(ctx context.Context, id domainproperties.PropertyID) (money.Money, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.items[id]
	if !ok {
		return money.Money{}, domainproperties.ErrNotFound
	}
	return property.BaseNightly, nil
}

func cloneProperty(p *domainproperties.Property) *domainproperties.Property {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

var _ domainproperties.Repository = (*PropertyRepository)(nil)
