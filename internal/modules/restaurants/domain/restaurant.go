package domain

import (
	"errors"

	reviews "mesaYaCore/internal/modules/reviews/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
)

var (
	ErrRestaurantNotFound           = errors.New("restaurant not found")
	ErrRestaurantNameTaken          = errors.New("restaurant name already taken")
	ErrManagerReservationNotAllowed = errors.New("manager cannot reserve their own restaurant")
	ErrInvalidWorkingTime           = errors.New("requested time is outside working hours")
	ErrInvalidManagerRestaurant     = errors.New("user does not manage this restaurant")
)

// ErrReservationNotInOpenTimes is the same class of rejection as
// ErrInvalidWorkingTime: the requested slot is not one the restaurant offers.
var ErrReservationNotInOpenTimes = ErrInvalidWorkingTime

// Restaurant is the aggregate owning its tables and reviews. Opening hours form
// an open interval, identical every day, with Opens strictly before Closes.
type Restaurant struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	ManagerID   int           `json:"managerId"`
	Cuisine     string        `json:"type"`
	Opens       TimeOfDay     `json:"startTime"`
	Closes      TimeOfDay     `json:"endTime"`
	Description string        `json:"description"`
	Address     users.Address `json:"address"`
	ImageLink   string        `json:"image"`

	tables  []*tables.Table
	reviews []*reviews.Review
	// reviewPos tracks each reviewer's slot in the sequence so resubmission
	// replaces instead of scanning.
	reviewPos map[int]int
}

func New(id int, name string, managerID int, cuisine string, opens, closes TimeOfDay, description string, address users.Address, imageLink string) (*Restaurant, error) {
	if !opens.Before(closes) {
		return nil, ErrInvalidWorkingTime
	}
	return &Restaurant{
		ID:          id,
		Name:        name,
		ManagerID:   managerID,
		Cuisine:     cuisine,
		Opens:       opens,
		Closes:      closes,
		Description: description,
		Address:     address,
		ImageLink:   imageLink,
		reviewPos:   make(map[int]int),
	}, nil
}

// AddTable registers a table numbered after the current count, ignoring whatever
// placeholder number the caller used. Numbers are therefore always 1..N in
// registration order.
func (r *Restaurant) AddTable(capacity int) *tables.Table {
	table := tables.New(len(r.tables)+1, r.ID, capacity)
	r.tables = append(r.tables, table)
	return table
}

// Table looks a table up by number. Absence is a normal outcome.
func (r *Restaurant) Table(number int) (*tables.Table, bool) {
	for _, t := range r.tables {
		if t.Number == number {
			return t, true
		}
	}
	return nil, false
}

// Tables returns the registration-ordered table sequence.
func (r *Restaurant) Tables() []*tables.Table {
	return r.tables
}

// MaxSeats returns the largest table capacity, or 0 without tables.
func (r *Restaurant) MaxSeats() int {
	maxSeats := 0
	for _, t := range r.tables {
		if t.Capacity > maxSeats {
			maxSeats = t.Capacity
		}
	}
	return maxSeats
}

// IsOpenAt reports whether a wall-clock instant falls inside the open interval.
// The closing instant itself is already closed.
func (r *Restaurant) IsOpenAt(t TimeOfDay) bool {
	return !t.Before(r.Opens) && t.Before(r.Closes)
}

// AddReview appends the review, first dropping any earlier review by the same
// user. The retained review always sits at the end of the sequence, so ordering
// reflects most recent submission.
func (r *Restaurant) AddReview(review *reviews.Review) {
	if pos, ok := r.reviewPos[review.User.ID]; ok {
		r.reviews = append(r.reviews[:pos], r.reviews[pos+1:]...)
		for _, shifted := range r.reviews[pos:] {
			r.reviewPos[shifted.User.ID]--
		}
	}
	r.reviewPos[review.User.ID] = len(r.reviews)
	r.reviews = append(r.reviews, review)
}

// Reviews returns the retained reviews, one per user, submission-ordered.
func (r *Restaurant) Reviews() []*reviews.Review {
	return r.reviews
}

// AverageRating is the component-wise arithmetic mean over retained reviews, or
// all zeros when none exist.
func (r *Restaurant) AverageRating() reviews.Rating {
	if len(r.reviews) == 0 {
		return reviews.Rating{}
	}
	var sum reviews.Rating
	for _, review := range r.reviews {
		sum.Food += review.Rating.Food
		sum.Service += review.Rating.Service
		sum.Ambiance += review.Rating.Ambiance
		sum.Overall += review.Rating.Overall
	}
	n := float64(len(r.reviews))
	return reviews.Rating{
		Food:     sum.Food / n,
		Service:  sum.Service / n,
		Ambiance: sum.Ambiance / n,
		Overall:  sum.Overall / n,
	}
}
