package transport

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/reservations/application/usecase"
	sessions "mesaYaCore/internal/modules/users/application/usecase"
	"mesaYaCore/internal/shared/auth"
	"mesaYaCore/internal/shared/httputil"
	"mesaYaCore/internal/shared/normalization"
)

// Wire formats for the datetime and date request fields.
const (
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "2006-01-02"
)

// ReservationHandler exposes availability, booking, cancellation and the
// reservation listings.
type ReservationHandler struct {
	availability *usecase.AvailabilityUseCase
	reserve      *usecase.ReserveUseCase
	queries      *usecase.ReservationQueryUseCase
	sessions     *sessions.SessionUseCase
}

func NewReservationHandler(
	availability *usecase.AvailabilityUseCase,
	reserve *usecase.ReserveUseCase,
	queries *usecase.ReservationQueryUseCase,
	sessions *sessions.SessionUseCase,
) *ReservationHandler {
	return &ReservationHandler{
		availability: availability,
		reserve:      reserve,
		queries:      queries,
		sessions:     sessions,
	}
}

func (h *ReservationHandler) Register(e *echo.Echo) {
	e.GET("/reserves/customer", h.customerReservations)
	e.GET("/reserves/:restaurantId/available-times", h.availableTimes)
	e.GET("/reserves/:restaurantId/:tableNumber", h.tableReservations)
	e.POST("/reserves/:restaurantId", h.addReservation)
	e.POST("/reserves/cancel/:reservationNumber", h.cancelReservation)
}

func (h *ReservationHandler) availableTimes(c echo.Context) error {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	people, err := strconv.Atoi(c.QueryParam("people"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.QueryParam("date")), time.Local)
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	times, err := h.availability.AvailableTimes(restaurantID, people, date)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "available times", times)
}

func (h *ReservationHandler) addReservation(c echo.Context) error {
	user, err := h.sessions.Resolve(auth.ExtractToken(c.Request()))
	if err != nil {
		return httputil.Fail(c, err)
	}
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	var params map[string]any
	if err := c.Bind(&params); err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	rawPeople, peopleSet := params["people"]
	rawDatetime, datetimeSet := params["datetime"]
	if !peopleSet || !datetimeSet {
		return httputil.BadRequest(c, httputil.ParamsMissing)
	}
	people, ok := normalization.AsInt(rawPeople)
	if !ok {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	at, err := time.ParseInLocation(dateTimeLayout, normalization.AsString(rawDatetime), time.Local)
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	reservation, err := h.reserve.Reserve(c.Request().Context(), restaurantID, user.ID, people, at)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "reservation done", reservation)
}

func (h *ReservationHandler) cancelReservation(c echo.Context) error {
	user, err := h.sessions.Resolve(auth.ExtractToken(c.Request()))
	if err != nil {
		return httputil.Fail(c, err)
	}
	number, err := strconv.Atoi(c.Param("reservationNumber"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	if err := h.reserve.Cancel(c.Request().Context(), number, user.ID); err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "reservation cancelled", nil)
}

func (h *ReservationHandler) tableReservations(c echo.Context) error {
	user, err := h.sessions.Resolve(auth.ExtractToken(c.Request()))
	if err != nil {
		return httputil.Fail(c, err)
	}
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	tableNumber, err := strconv.Atoi(c.Param("tableNumber"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.QueryParam("date")), time.Local)
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	listed, err := h.queries.TableReservations(restaurantID, tableNumber, date, user.ID)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "restaurant table reservations", listed)
}

func (h *ReservationHandler) customerReservations(c echo.Context) error {
	user, err := h.sessions.Resolve(auth.ExtractToken(c.Request()))
	if err != nil {
		return httputil.Fail(c, err)
	}
	listed, err := h.queries.CustomerReservations(user.ID)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "user reservations", listed)
}
