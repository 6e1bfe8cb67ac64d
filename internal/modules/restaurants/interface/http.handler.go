package transport

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/restaurants/application/usecase"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	sessions "mesaYaCore/internal/modules/users/application/usecase"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/shared/auth"
	"mesaYaCore/internal/shared/httputil"
	"mesaYaCore/internal/shared/normalization"
)

// RestaurantHandler exposes the restaurant catalogue and table registration.
type RestaurantHandler struct {
	restaurants *usecase.RestaurantUseCase
	sessions    *sessions.SessionUseCase
}

func NewRestaurantHandler(restaurants *usecase.RestaurantUseCase, sessions *sessions.SessionUseCase) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, sessions: sessions}
}

func (h *RestaurantHandler) Register(e *echo.Echo) {
	e.POST("/restaurants", h.create)
	e.GET("/restaurants", h.list)
	e.GET("/restaurants/:restaurantId", h.get)
	e.POST("/tables/:restaurantId", h.addTable)
	e.GET("/tables/:restaurantId", h.listTables)
}

type createRestaurantRequest struct {
	Name        string        `json:"name"`
	Cuisine     string        `json:"type"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime"`
	Description string        `json:"description"`
	Address     users.Address `json:"address"`
	ImageLink   string        `json:"image"`
}

func (h *RestaurantHandler) create(c echo.Context) error {
	user, err := h.sessions.Resolve(auth.ExtractToken(c.Request()))
	if err != nil {
		return httputil.Fail(c, err)
	}
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	if req.Name == "" || req.StartTime == "" || req.EndTime == "" {
		return httputil.BadRequest(c, httputil.ParamsMissing)
	}
	opens, err := restaurants.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	closes, err := restaurants.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	restaurant, err := h.restaurants.Create(user.ID, usecase.CreateRestaurantInput{
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Opens:       opens,
		Closes:      closes,
		Description: req.Description,
		Address:     req.Address,
		ImageLink:   req.ImageLink,
	})
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "restaurant added", restaurant)
}

func (h *RestaurantHandler) list(c echo.Context) error {
	return httputil.OK(c, "restaurants listed", h.restaurants.List())
}

func (h *RestaurantHandler) get(c echo.Context) error {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	restaurant, err := h.restaurants.Get(restaurantID)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "restaurant found", restaurant)
}

func (h *RestaurantHandler) addTable(c echo.Context) error {
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
	raw, present := params["seatsNumber"]
	if !present {
		return httputil.BadRequest(c, httputil.ParamsMissing)
	}
	seats, ok := normalization.AsInt(raw)
	if !ok || seats <= 0 {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	table, err := h.restaurants.AddTable(restaurantID, user.ID, seats)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "table added", table)
}

func (h *RestaurantHandler) listTables(c echo.Context) error {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	tables, err := h.restaurants.Tables(restaurantID)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "tables listed", tables)
}
