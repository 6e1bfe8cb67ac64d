package usecase

import (
	"time"

	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/platform/registry"
)

// ReservationQueryUseCase serves the read-only reporting surface: per-table
// listings for managers and full histories for customers.
type ReservationQueryUseCase struct {
	store *registry.Store
}

func NewReservationQueryUseCase(store *registry.Store) *ReservationQueryUseCase {
	return &ReservationQueryUseCase{store: store}
}

// TableReservations lists every reservation, cancelled included, booked on one
// table for one day. Restricted to the manager of that restaurant.
func (uc *ReservationQueryUseCase) TableReservations(restaurantID, tableNumber int, date time.Time, actingUserID int) ([]*reservations.Reservation, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	user, ok := uc.store.User(actingUserID)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	if !user.IsManager() {
		return nil, users.ErrUserNotManager
	}
	if restaurant.ManagerID != user.ID {
		return nil, restaurants.ErrInvalidManagerRestaurant
	}

	lock := uc.store.BookingLock(restaurantID)
	lock.RLock()
	defer lock.RUnlock()
	table, ok := restaurant.Table(tableNumber)
	if !ok {
		return nil, tables.ErrTableNotFound
	}
	return table.ReservationsOn(date), nil
}

// CustomerReservations returns the user's full history in insertion order.
func (uc *ReservationQueryUseCase) CustomerReservations(userID int) ([]*reservations.Reservation, error) {
	user, ok := uc.store.User(userID)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user.Reservations(), nil
}
