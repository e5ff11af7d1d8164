package memory

import (
	"context"
	"sort"
	"sync"

	domainproperties "stayly/internal/domain/properties"
	domainreservations "stayly/internal/domain/reservations"
)

// ReservationRepository stores reservations in memory.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservations.ReservationID]*domainreservations.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items: make(map[domainreservations.ReservationID]*domainreservations.Reservation),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservations.ReservationID) (*domainreservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservation, ok := r.items[id]
	if !ok {
		return nil, domainreservations.ErrNotFound
	}
	return cloneReservation(reservation), nil
}

func (r *ReservationRepository) ByGuest(ctx context.Context, guestID string) ([]*domainreservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservations.Reservation, 0)
	for _, reservation := range r.items {
		if reservation.GuestID == guestID {
			out = append(out, cloneReservation(reservation))
		}
	}
	sortReservations(out)
	return out, nil
}

func (r *ReservationRepository) ByProperty(ctx context.Context, propertyID domainproperties.PropertyID) ([]*domainreservations.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservations.Reservation, 0)
	for _, reservation := range r.items {
		if reservation.PropertyID == propertyID {
			out = append(out, cloneReservation(reservation))
		}
	}
	sortReservations(out)
	return out, nil
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *domainreservations.Reservation) error {
	if reservation == nil {
		return domainreservations.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[reservation.ID] = cloneReservation(reservation)
	return nil
}

func sortReservations(reservations []*domainreservations.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.Before(reservations[j].CreatedAt)
	})
}

func cloneReservation(res *domainreservations.Reservation) *domainreservations.Reservation {
	if res == nil {
		return nil
	}
	clone := *res
	clone.ClearEvents()
	return &clone
}

var _ domainreservations.Repository = (*ReservationRepository)(nil)
