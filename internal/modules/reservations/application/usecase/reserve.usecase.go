package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"mesaYaCore/internal/modules/realtime/domain"
	"mesaYaCore/internal/modules/reservations/application/port"
	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/platform/registry"
)

// ReserveUseCase books and cancels reservations. The whole validate-select-commit
// sequence runs under the restaurant's exclusive booking lock, so two concurrent
// requests for the same slot can never both claim the same table.
type ReserveUseCase struct {
	store  *registry.Store
	events port.EventPublisher
	now    func() time.Time
}

func NewReserveUseCase(store *registry.Store, events port.EventPublisher) *ReserveUseCase {
	return &ReserveUseCase{store: store, events: events, now: time.Now}
}

// Reserve validates in a fixed order, surfacing the first failing condition, then
// commits the three-way registration (table, user, registry) atomically.
func (uc *ReserveUseCase) Reserve(ctx context.Context, restaurantID, userID, people int, at time.Time) (*reservations.Reservation, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	user, ok := uc.store.User(userID)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	if user.ID == restaurant.ManagerID {
		return nil, restaurants.ErrManagerReservationNotAllowed
	}

	// The lock also covers MaxSeats: tables can be registered concurrently.
	lock := uc.store.BookingLock(restaurantID)
	lock.Lock()
	if people <= 0 || people > restaurant.MaxSeats() {
		lock.Unlock()
		return nil, reservations.ErrBadPeopleNumber
	}
	if at.Before(uc.now()) {
		lock.Unlock()
		return nil, reservations.ErrDateTimeInThePast
	}
	if !restaurant.IsOpenAt(restaurants.TimeOfDayFrom(at)) {
		lock.Unlock()
		return nil, restaurants.ErrReservationNotInOpenTimes
	}
	table := bestFitTable(restaurant, people, at)
	if table == nil {
		lock.Unlock()
		return nil, tables.ErrTableNotFound
	}
	reservation := reservations.New(uc.store.NextReservationNumber(), user.ID, restaurant.ID, table.Number, at)
	table.AddReservation(reservation)
	user.AddReservation(reservation)
	uc.store.RegisterReservation(reservation)
	lock.Unlock()

	slog.Info("reservation created",
		slog.Int("reservationNumber", reservation.Number),
		slog.Int("restaurantId", restaurant.ID),
		slog.Int("tableNumber", table.Number),
		slog.Int("people", people),
		slog.Time("datetime", at),
	)
	uc.publish(ctx, domain.ActionCreated, reservation)
	return reservation, nil
}

// Cancel flips the cancellation flag of a reservation the acting user owns.
// Past or already-cancelled reservations stay as they are.
func (uc *ReserveUseCase) Cancel(ctx context.Context, number, userID int) error {
	reservation, ok := uc.store.Reservation(number)
	if !ok {
		return reservations.ErrReservationNotFound
	}
	if reservation.UserID != userID {
		return users.ErrUserNotFound
	}

	lock := uc.store.BookingLock(reservation.RestaurantID)
	lock.Lock()
	if reservation.Cancelled || reservation.DateTime.Before(uc.now()) {
		lock.Unlock()
		return reservations.ErrReservationCannotBeCancelled
	}
	reservation.Cancel()
	lock.Unlock()

	slog.Info("reservation cancelled",
		slog.Int("reservationNumber", reservation.Number),
		slog.Int("restaurantId", reservation.RestaurantID),
	)
	uc.publish(ctx, domain.ActionCancelled, reservation)
	return nil
}

func (uc *ReserveUseCase) publish(ctx context.Context, action string, reservation *reservations.Reservation) {
	if uc.events == nil {
		return
	}
	metadata := map[string]string{
		"userId":       strconv.Itoa(reservation.UserID),
		"restaurantId": strconv.Itoa(reservation.RestaurantID),
	}
	uc.events.Publish(ctx, domain.NewEvent(domain.EntityReservations, action, strconv.Itoa(reservation.Number), reservation, metadata, uc.now()))
}
