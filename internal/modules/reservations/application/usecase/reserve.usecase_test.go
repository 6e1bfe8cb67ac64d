package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	realtime "mesaYaCore/internal/modules/realtime/domain"
	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/platform/registry"
)

type capturedEvents struct {
	mu       sync.Mutex
	messages []*realtime.Message
}

func (c *capturedEvents) Publish(_ context.Context, msg *realtime.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *capturedEvents) topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	listed := make([]string, 0, len(c.messages))
	for _, msg := range c.messages {
		listed = append(listed, msg.Topic)
	}
	return listed
}

// bookingFixture wires a store with one manager, one client and one restaurant
// open 09:00-22:00 with a single table for four. The clock is frozen at 08:00 on
// 2026-09-01 and can be moved by tests.
type bookingFixture struct {
	store        *registry.Store
	manager      *users.User
	client       *users.User
	restaurant   *restaurants.Restaurant
	events       *capturedEvents
	reserve      *ReserveUseCase
	availability *AvailabilityUseCase
	queries      *ReservationQueryUseCase
	clock        time.Time
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	fix := &bookingFixture{
		store: registry.NewStore(),
		clock: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}

	var err error
	fix.manager, err = fix.store.AddUser("marco", "pw", "marco@example.com", users.Address{}, users.RoleManager)
	if err != nil {
		t.Fatalf("add manager: %v", err)
	}
	fix.client, err = fix.store.AddUser("jill", "pw", "jill@example.com", users.Address{}, users.RoleClient)
	if err != nil {
		t.Fatalf("add client: %v", err)
	}
	fix.restaurant, err = fix.store.AddRestaurant("Casa Pepe", fix.manager.ID, "spanish",
		restaurants.NewTimeOfDay(9, 0), restaurants.NewTimeOfDay(22, 0), "", users.Address{}, "")
	if err != nil {
		t.Fatalf("add restaurant: %v", err)
	}
	fix.restaurant.AddTable(4)

	now := func() time.Time { return fix.clock }
	fix.events = &capturedEvents{}
	fix.reserve = NewReserveUseCase(fix.store, fix.events)
	fix.reserve.now = now
	fix.availability = NewAvailabilityUseCase(fix.store, 30*time.Minute)
	fix.availability.now = now
	fix.queries = NewReservationQueryUseCase(fix.store)
	return fix
}

func (fix *bookingFixture) at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestReserveHappyPath(t *testing.T) {
	fix := newBookingFixture(t)

	reservation, err := fix.reserve.Reserve(context.Background(), fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if reservation.TableNumber != 1 {
		t.Fatalf("expected table 1, got %d", reservation.TableNumber)
	}
	if reservation.UserID != fix.client.ID || reservation.RestaurantID != fix.restaurant.ID {
		t.Fatal("reservation should reference its user and restaurant")
	}
	if got, ok := fix.store.Reservation(reservation.Number); !ok || got != reservation {
		t.Fatal("reservation should be registered globally")
	}
	history := fix.client.Reservations()
	if len(history) != 1 || history[0] != reservation {
		t.Fatal("reservation should appear in the user's history")
	}

	topics := fix.events.topics()
	if len(topics) != 1 || topics[0] != "reservations.created" {
		t.Fatalf("expected one reservations.created event, got %v", topics)
	}
}

func TestReserveRejectsDoubleBooking(t *testing.T) {
	fix := newBookingFixture(t)

	if _, err := fix.reserve.Reserve(context.Background(), fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := fix.reserve.Reserve(context.Background(), fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0)); !errors.Is(err, tables.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound for the taken slot, got %v", err)
	}
	if _, err := fix.reserve.Reserve(context.Background(), fix.restaurant.ID, fix.client.ID, 2, fix.at(10, 30)); err != nil {
		t.Fatalf("a different slot should still be free: %v", err)
	}
}

func TestReserveValidationOrder(t *testing.T) {
	fix := newBookingFixture(t)
	ctx := context.Background()

	if _, err := fix.reserve.Reserve(ctx, 99, fix.client.ID, 2, fix.at(19, 0)); !errors.Is(err, restaurants.ErrRestaurantNotFound) {
		t.Fatalf("unknown restaurant: got %v", err)
	}
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, 99, 2, fix.at(19, 0)); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("unknown user: got %v", err)
	}
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.manager.ID, 2, fix.at(19, 0)); !errors.Is(err, restaurants.ErrManagerReservationNotAllowed) {
		t.Fatalf("own manager: got %v", err)
	}
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 0, fix.at(19, 0)); !errors.Is(err, reservations.ErrBadPeopleNumber) {
		t.Fatalf("zero people: got %v", err)
	}
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 5, fix.at(19, 0)); !errors.Is(err, reservations.ErrBadPeopleNumber) {
		t.Fatalf("party beyond largest table: got %v", err)
	}
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(7, 0)); !errors.Is(err, reservations.ErrDateTimeInThePast) {
		t.Fatalf("past instant: got %v", err)
	}
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(23, 0)); !errors.Is(err, restaurants.ErrReservationNotInOpenTimes) {
		t.Fatalf("after closing: got %v", err)
	}
}

func TestReserveManagerMayBookElsewhere(t *testing.T) {
	fix := newBookingFixture(t)
	other, err := fix.store.AddRestaurant("La Otra", fix.client.ID+100, "",
		restaurants.NewTimeOfDay(9, 0), restaurants.NewTimeOfDay(22, 0), "", users.Address{}, "")
	if err != nil {
		t.Fatalf("add restaurant: %v", err)
	}
	other.AddTable(4)

	if _, err := fix.reserve.Reserve(context.Background(), other.ID, fix.manager.ID, 2, fix.at(19, 0)); err != nil {
		t.Fatalf("a manager booking another restaurant should pass: %v", err)
	}
}

func TestCancelHappyPath(t *testing.T) {
	fix := newBookingFixture(t)
	ctx := context.Background()

	reservation, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := fix.reserve.Cancel(ctx, reservation.Number, fix.client.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if reservation.Active() {
		t.Fatal("reservation should be cancelled")
	}

	// The slot frees up for a new booking.
	if _, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0)); err != nil {
		t.Fatalf("rebooking the freed slot: %v", err)
	}

	topics := fix.events.topics()
	if len(topics) != 3 || topics[1] != "reservations.cancelled" {
		t.Fatalf("expected a reservations.cancelled event, got %v", topics)
	}
}

func TestCancelRejections(t *testing.T) {
	fix := newBookingFixture(t)
	ctx := context.Background()

	if err := fix.reserve.Cancel(ctx, 999, fix.client.ID); !errors.Is(err, reservations.ErrReservationNotFound) {
		t.Fatalf("unknown number: got %v", err)
	}

	reservation, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := fix.reserve.Cancel(ctx, reservation.Number, fix.manager.ID); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("someone else's reservation: got %v", err)
	}
	if err := fix.reserve.Cancel(ctx, reservation.Number, fix.client.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := fix.reserve.Cancel(ctx, reservation.Number, fix.client.ID); !errors.Is(err, reservations.ErrReservationCannotBeCancelled) {
		t.Fatalf("second cancel: got %v", err)
	}

	second, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(20, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	fix.clock = fix.at(21, 0)
	if err := fix.reserve.Cancel(ctx, second.Number, fix.client.ID); !errors.Is(err, reservations.ErrReservationCannotBeCancelled) {
		t.Fatalf("past reservation: got %v", err)
	}
}

func TestReserveConcurrentAcrossRestaurants(t *testing.T) {
	fix := newBookingFixture(t)
	at := fix.at(19, 0)

	const others = 8
	targets := []int{fix.restaurant.ID}
	for i := 0; i < others; i++ {
		restaurant, err := fix.store.AddRestaurant(fmt.Sprintf("Sucursal %d", i), fix.manager.ID, "",
			restaurants.NewTimeOfDay(9, 0), restaurants.NewTimeOfDay(22, 0), "", users.Address{}, "")
		if err != nil {
			t.Fatalf("add restaurant: %v", err)
		}
		restaurant.AddTable(4)
		targets = append(targets, restaurant.ID)
	}

	// Each booking holds a different restaurant's lock; the user's history must
	// still record every one of them.
	var wg sync.WaitGroup
	errs := make([]error, len(targets))
	for i, id := range targets {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			_, errs[i] = fix.reserve.Reserve(context.Background(), id, fix.client.ID, 2, at)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
	}
	history := fix.client.Reservations()
	if len(history) != len(targets) {
		t.Fatalf("expected %d reservations in the history, got %d", len(targets), len(history))
	}
	booked := make(map[int]struct{}, len(history))
	for _, r := range history {
		booked[r.RestaurantID] = struct{}{}
	}
	for _, id := range targets {
		if _, ok := booked[id]; !ok {
			t.Fatalf("restaurant %d missing from the history", id)
		}
	}
}

func TestReserveConcurrentSameSlot(t *testing.T) {
	fix := newBookingFixture(t)
	at := fix.at(19, 0)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fix.reserve.Reserve(context.Background(), fix.restaurant.ID, fix.client.ID, 2, at)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, tables.ErrTableNotFound):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one booking should win the slot, got %d", succeeded)
	}
}
