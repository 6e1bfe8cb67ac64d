package usecase

import (
	"context"
	"errors"
	"testing"

	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
)

func TestTableReservationsManagerOnly(t *testing.T) {
	fix := newBookingFixture(t)
	date := fix.at(0, 0)

	if _, err := fix.queries.TableReservations(99, 1, date, fix.manager.ID); !errors.Is(err, restaurants.ErrRestaurantNotFound) {
		t.Fatalf("unknown restaurant: got %v", err)
	}
	if _, err := fix.queries.TableReservations(fix.restaurant.ID, 1, date, 99); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("unknown user: got %v", err)
	}
	if _, err := fix.queries.TableReservations(fix.restaurant.ID, 1, date, fix.client.ID); !errors.Is(err, users.ErrUserNotManager) {
		t.Fatalf("client: got %v", err)
	}

	otherManager, err := fix.store.AddUser("rival", "pw", "", users.Address{}, users.RoleManager)
	if err != nil {
		t.Fatalf("add manager: %v", err)
	}
	if _, err := fix.queries.TableReservations(fix.restaurant.ID, 1, date, otherManager.ID); !errors.Is(err, restaurants.ErrInvalidManagerRestaurant) {
		t.Fatalf("foreign manager: got %v", err)
	}
	if _, err := fix.queries.TableReservations(fix.restaurant.ID, 9, date, fix.manager.ID); !errors.Is(err, tables.ErrTableNotFound) {
		t.Fatalf("unknown table: got %v", err)
	}
}

func TestTableReservationsIncludesCancelled(t *testing.T) {
	fix := newBookingFixture(t)
	ctx := context.Background()

	kept, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	dropped, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(20, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := fix.reserve.Cancel(ctx, dropped.Number, fix.client.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	listed, err := fix.queries.TableReservations(fix.restaurant.ID, 1, fix.at(0, 0), fix.manager.ID)
	if err != nil {
		t.Fatalf("table reservations: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected both bookings listed, got %d", len(listed))
	}
	if listed[0] != kept || listed[1] != dropped {
		t.Fatal("listing should keep booking order and include the cancelled entry")
	}
}

func TestCustomerReservations(t *testing.T) {
	fix := newBookingFixture(t)
	ctx := context.Background()

	if _, err := fix.queries.CustomerReservations(99); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("unknown user: got %v", err)
	}

	first, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(19, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	second, err := fix.reserve.Reserve(ctx, fix.restaurant.ID, fix.client.ID, 2, fix.at(20, 0))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	listed, err := fix.queries.CustomerReservations(fix.client.ID)
	if err != nil {
		t.Fatalf("customer reservations: %v", err)
	}
	if len(listed) != 2 || listed[0] != first || listed[1] != second {
		t.Fatal("history should list bookings in insertion order")
	}
}
