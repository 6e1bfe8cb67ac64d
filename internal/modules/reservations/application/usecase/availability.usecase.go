package usecase

import (
	"time"

	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	"mesaYaCore/internal/platform/registry"
)

// DefaultSlotStep is the booking granularity used when none is configured.
const DefaultSlotStep = 30 * time.Minute

// AvailabilityUseCase computes bookable time-of-day slots. It never mutates
// state and is safe to call concurrently under the restaurant's read lock.
type AvailabilityUseCase struct {
	store *registry.Store
	step  time.Duration
	now   func() time.Time
}

func NewAvailabilityUseCase(store *registry.Store, step time.Duration) *AvailabilityUseCase {
	if step <= 0 {
		step = DefaultSlotStep
	}
	return &AvailabilityUseCase{store: store, step: step, now: time.Now}
}

// AvailableTimes lists the open-interval instants on the given date at which at
// least one table seats the party and is free. Ascending, duplicate-free; for
// today, instants already passed are trimmed.
func (uc *AvailabilityUseCase) AvailableTimes(restaurantID, people int, date time.Time) ([]restaurants.TimeOfDay, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}

	// The read lock covers MaxSeats as well as the slot scan.
	lock := uc.store.BookingLock(restaurantID)
	lock.RLock()
	defer lock.RUnlock()

	if people <= 0 || people > restaurant.MaxSeats() {
		return nil, reservations.ErrBadPeopleNumber
	}

	now := uc.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, reservations.ErrDateTimeInThePast
	}

	available := make([]restaurants.TimeOfDay, 0)
	for slot := restaurant.Opens; slot.Before(restaurant.Closes); slot = slot.Add(uc.step) {
		at := slot.At(date)
		if at.Before(now) {
			continue
		}
		if bestFitTable(restaurant, people, at) != nil {
			available = append(available, slot)
		}
	}
	return available, nil
}

// bestFitTable picks the free table wasting the fewest seats: smallest capacity
// that still fits the party, ties broken by lowest table number. Selection is an
// explicit scan so the policy never depends on container order.
func bestFitTable(restaurant *restaurants.Restaurant, people int, at time.Time) *tables.Table {
	var best *tables.Table
	for _, t := range restaurant.Tables() {
		if t.Capacity < people || t.IsReserved(at) {
			continue
		}
		if best == nil || t.Capacity < best.Capacity || (t.Capacity == best.Capacity && t.Number < best.Number) {
			best = t
		}
	}
	return best
}
