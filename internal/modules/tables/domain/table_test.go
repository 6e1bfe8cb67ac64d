package domain

import (
	"testing"
	"time"

	reservations "mesaYaCore/internal/modules/reservations/domain"
)

func TestIsReservedMatchesExactInstant(t *testing.T) {
	table := New(1, 7, 4)
	at := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	table.AddReservation(reservations.New(1, 10, 7, 1, at))

	if !table.IsReserved(at) {
		t.Fatal("table should be reserved at the booked instant")
	}
	if table.IsReserved(at.Add(30 * time.Minute)) {
		t.Fatal("a different slot on the same day should not conflict")
	}
}

func TestIsReservedIgnoresCancelled(t *testing.T) {
	table := New(1, 7, 4)
	at := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	r := reservations.New(1, 10, 7, 1, at)
	table.AddReservation(r)
	r.Cancel()

	if table.IsReserved(at) {
		t.Fatal("cancelled reservation should free the slot")
	}
}

func TestReservationsOnFiltersByDate(t *testing.T) {
	table := New(2, 7, 6)
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	kept := reservations.New(1, 10, 7, 2, day.Add(19*time.Hour))
	cancelled := reservations.New(2, 11, 7, 2, day.Add(20*time.Hour))
	cancelled.Cancel()
	other := reservations.New(3, 12, 7, 2, day.AddDate(0, 0, 1).Add(19*time.Hour))
	table.AddReservation(kept)
	table.AddReservation(cancelled)
	table.AddReservation(other)

	listed := table.ReservationsOn(day)
	if len(listed) != 2 {
		t.Fatalf("expected 2 reservations on %v, got %d", day, len(listed))
	}
	if listed[0] != kept || listed[1] != cancelled {
		t.Fatal("listing should keep registration order and include cancelled entries")
	}
}
