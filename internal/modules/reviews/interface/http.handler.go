package transport

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/reviews/application/usecase"
	reviews "mesaYaCore/internal/modules/reviews/domain"
	sessions "mesaYaCore/internal/modules/users/application/usecase"
	"mesaYaCore/internal/shared/auth"
	"mesaYaCore/internal/shared/httputil"
	"mesaYaCore/internal/shared/normalization"
)

// ReviewHandler exposes review submission and the per-restaurant listing with
// aggregated ratings.
type ReviewHandler struct {
	reviews  *usecase.ReviewUseCase
	sessions *sessions.SessionUseCase
}

func NewReviewHandler(reviews *usecase.ReviewUseCase, sessions *sessions.SessionUseCase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, sessions: sessions}
}

func (h *ReviewHandler) Register(e *echo.Echo) {
	e.POST("/reviews/:restaurantId", h.addReview)
	e.GET("/reviews/:restaurantId", h.listReviews)
}

func (h *ReviewHandler) addReview(c echo.Context) error {
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
	rawRating, ratingSet := params["rating"]
	rawComment, commentSet := params["comment"]
	if !ratingSet || !commentSet {
		return httputil.BadRequest(c, httputil.ParamsMissing)
	}
	fields, ok := normalization.AsMap(rawRating)
	if !ok {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	rating, ok := ratingFrom(fields)
	if !ok {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	review, err := h.reviews.AddReview(c.Request().Context(), restaurantID, user.ID, rating, normalization.AsString(rawComment))
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "review added successfully", review)
}

func ratingFrom(fields map[string]any) (reviews.Rating, bool) {
	var rating reviews.Rating
	for key, dst := range map[string]*float64{
		"food":     &rating.Food,
		"service":  &rating.Service,
		"ambiance": &rating.Ambiance,
		"overall":  &rating.Overall,
	} {
		raw, present := fields[key]
		if !present {
			return reviews.Rating{}, false
		}
		value, ok := normalization.AsFloat64(raw)
		if !ok {
			return reviews.Rating{}, false
		}
		*dst = value
	}
	return rating, true
}

func (h *ReviewHandler) listReviews(c echo.Context) error {
	restaurantID, err := strconv.Atoi(c.Param("restaurantId"))
	if err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	listed, err := h.reviews.Reviews(restaurantID)
	if err != nil {
		return httputil.Fail(c, err)
	}
	average, err := h.reviews.AverageRating(restaurantID)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "reviews listed", map[string]any{
		"reviews":       listed,
		"averageRating": average,
		"starCount":     average.StarCount(),
	})
}
