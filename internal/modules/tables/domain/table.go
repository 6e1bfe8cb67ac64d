package domain

import (
	"errors"
	"time"

	reservations "mesaYaCore/internal/modules/reservations/domain"
)

var ErrTableNotFound = errors.New("table not found")

// Table is a seating resource owned by a restaurant. Numbers are unique within the
// restaurant and assigned by the registry; any number supplied at construction is a
// placeholder until the table is registered.
type Table struct {
	Number       int `json:"tableNumber"`
	RestaurantID int `json:"restaurantId"`
	Capacity     int `json:"seatsNumber"`

	reservations []*reservations.Reservation
}

func New(number, restaurantID, capacity int) *Table {
	return &Table{Number: number, RestaurantID: restaurantID, Capacity: capacity}
}

// AddReservation appends to the table's reservation sequence. The caller is
// responsible for conflict checks; the sequence itself keeps every booking ever
// made, cancelled ones included.
func (t *Table) AddReservation(r *reservations.Reservation) {
	t.reservations = append(t.reservations, r)
}

// Reservations returns the booking sequence in registration order.
func (t *Table) Reservations() []*reservations.Reservation {
	return t.reservations
}

// IsReserved reports whether an active reservation exists at exactly the given
// instant. Two bookings at different minutes never conflict.
func (t *Table) IsReserved(at time.Time) bool {
	for _, r := range t.reservations {
		if r.Active() && r.DateTime.Equal(at) {
			return true
		}
	}
	return false
}

// ReservationsOn returns every reservation, cancelled ones included, whose date
// component matches the given day.
func (t *Table) ReservationsOn(date time.Time) []*reservations.Reservation {
	y, m, d := date.Date()
	matched := make([]*reservations.Reservation, 0)
	for _, r := range t.reservations {
		ry, rm, rd := r.DateTime.Date()
		if ry == y && rm == m && rd == d {
			matched = append(matched, r)
		}
	}
	return matched
}
