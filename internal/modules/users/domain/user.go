package domain

import (
	"errors"
	"strings"
	"sync"
	"time"

	reservations "mesaYaCore/internal/modules/reservations/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotManager     = errors.New("user is not a manager")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Role is fixed at creation; a user is either a client or a manager, never both.
type Role string

const (
	RoleClient  Role = "client"
	RoleManager Role = "manager"
)

// ParseRole maps arbitrary payload strings onto a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleClient:
		return RoleClient, true
	case RoleManager:
		return RoleManager, true
	default:
		return "", false
	}
}

type Address struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Street  string `json:"street"`
}

// User holds identity, credentials and the ordered sequence of reservations the
// user has made. The sequence is append-only; re-adding the same reservation is a
// caller error and is not deduplicated here. It carries its own mutex: bookings
// at different restaurants run under different booking locks, so the sequence
// cannot rely on any of them.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
	Role     Role    `json:"role"`

	password string

	mu           sync.Mutex
	reservations []*reservations.Reservation
}

func New(id int, username, password, email string, address Address, role Role) *User {
	return &User{
		ID:       id,
		Username: username,
		Email:    email,
		Address:  address,
		Role:     role,
		password: password,
	}
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) CheckPassword(password string) bool {
	return u.password == password
}

// AddReservation appends to the user's reservation history in insertion order.
func (u *User) AddReservation(r *reservations.Reservation) {
	u.mu.Lock()
	u.reservations = append(u.reservations, r)
	u.mu.Unlock()
}

// Reservations returns a snapshot of the full history, cancelled entries
// included.
func (u *User) Reservations() []*reservations.Reservation {
	u.mu.Lock()
	defer u.mu.Unlock()
	listed := make([]*reservations.Reservation, len(u.reservations))
	copy(listed, u.reservations)
	return listed
}

// Reservation looks a booking up by number within the user's own history.
func (u *User) Reservation(number int) (*reservations.Reservation, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, r := range u.reservations {
		if r.Number == number {
			return r, true
		}
	}
	return nil, false
}

// HasVisited reports whether the user holds an active reservation at the given
// restaurant whose slot already passed. This is the review-eligibility check.
func (u *User) HasVisited(restaurantID int, now time.Time) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, r := range u.reservations {
		if r.RestaurantID == restaurantID && r.Active() && r.DateTime.Before(now) {
			return true
		}
	}
	return false
}
