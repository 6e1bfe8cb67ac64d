package domain

import (
	"errors"
	"math"
	"time"

	users "mesaYaCore/internal/modules/users/domain"
)

var (
	ErrInvalidReviewRating = errors.New("invalid review rating")
	ErrUserHasNotReserved  = errors.New("user has not reserved at this restaurant")
	ErrManagerCannotReview = errors.New("manager cannot review their own restaurant")
)

const maxStars = 5

// Rating carries four independent score components. Components are validated at
// the submission boundary, not here; averages computed over reviews reuse the
// same type.
type Rating struct {
	Food     float64 `json:"food"`
	Service  float64 `json:"service"`
	Ambiance float64 `json:"ambiance"`
	Overall  float64 `json:"overall"`
}

// Valid reports whether every component is a well-formed number within [0, 5].
func (r Rating) Valid() bool {
	for _, v := range []float64{r.Food, r.Service, r.Ambiance, r.Overall} {
		if math.IsNaN(v) || v < 0 || v > maxStars {
			return false
		}
	}
	return true
}

// StarCount rounds the overall component half-up and clamps it to [0, 5].
func (r Rating) StarCount() int {
	stars := int(math.Floor(r.Overall + 0.5))
	if stars < 0 {
		return 0
	}
	if stars > maxStars {
		return maxStars
	}
	return stars
}

// Review is one user's verdict on a restaurant. A restaurant keeps at most one
// review per user; resubmitting replaces the old one.
type Review struct {
	User      *users.User `json:"user"`
	Rating    Rating      `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
}

func New(user *users.User, rating Rating, comment string, at time.Time) *Review {
	return &Review{User: user, Rating: rating, Comment: comment, CreatedAt: at}
}
