package httputil

import (
	"errors"
	"net/http"

	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	reviews "mesaYaCore/internal/modules/reviews/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/shared/auth"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

type mapping struct {
	err    error
	status int
}

// Every caller-facing error kind of the booking core, mapped once. Handlers go
// through MapError instead of repeating switch blocks.
var mappings = []mapping{
	{users.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrMissingToken, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},

	{restaurants.ErrManagerReservationNotAllowed, http.StatusForbidden},
	{restaurants.ErrInvalidManagerRestaurant, http.StatusForbidden},
	{users.ErrUserNotManager, http.StatusForbidden},
	{reviews.ErrManagerCannotReview, http.StatusForbidden},

	{restaurants.ErrRestaurantNotFound, http.StatusNotFound},
	{tables.ErrTableNotFound, http.StatusNotFound},
	{reservations.ErrReservationNotFound, http.StatusNotFound},
	{users.ErrUserNotFound, http.StatusNotFound},

	{restaurants.ErrRestaurantNameTaken, http.StatusConflict},
	{users.ErrUsernameTaken, http.StatusConflict},

	{reservations.ErrBadPeopleNumber, http.StatusBadRequest},
	{reservations.ErrDateTimeInThePast, http.StatusBadRequest},
	{reservations.ErrReservationCannotBeCancelled, http.StatusBadRequest},
	{restaurants.ErrInvalidWorkingTime, http.StatusBadRequest},
	{reviews.ErrInvalidReviewRating, http.StatusBadRequest},
	{reviews.ErrUserHasNotReserved, http.StatusBadRequest},
}

// MapError converts a domain error into HTTP status and message. Unknown errors
// stay generic so internals never leak to clients.
func MapError(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return HTTPErrorInfo{Status: m.status, Message: m.err.Error()}
		}
	}
	return HTTPErrorInfo{Status: http.StatusInternalServerError, Message: "internal server error"}
}
