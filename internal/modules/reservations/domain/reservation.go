package domain

import (
	"errors"
	"time"
)

var (
	ErrReservationNotFound          = errors.New("reservation not found")
	ErrReservationCannotBeCancelled = errors.New("reservation cannot be cancelled")
	ErrDateTimeInThePast            = errors.New("date time is in the past")
	ErrBadPeopleNumber              = errors.New("bad people number")
)

// Reservation is a booking of one table at one exact date-time. It references its
// user, restaurant and table by identifier only; the registry owns the entities.
type Reservation struct {
	Number       int       `json:"reservationNumber"`
	UserID       int       `json:"userId"`
	RestaurantID int       `json:"restaurantId"`
	TableNumber  int       `json:"tableNumber"`
	DateTime     time.Time `json:"datetime"`
	Cancelled    bool      `json:"cancelled"`
}

func New(number, userID, restaurantID, tableNumber int, at time.Time) *Reservation {
	return &Reservation{
		Number:       number,
		UserID:       userID,
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		DateTime:     at,
	}
}

// Cancel flips the cancellation flag. The reservation stays in every sequence it
// was appended to; it is only excluded from conflict checks from now on.
func (r *Reservation) Cancel() {
	r.Cancelled = true
}

// Active reports whether the reservation still counts for conflict checks.
func (r *Reservation) Active() bool {
	return !r.Cancelled
}
