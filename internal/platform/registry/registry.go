package registry

import (
	"sync"
	"sync/atomic"

	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	users "mesaYaCore/internal/modules/users/domain"
)

// Store is the sole owner of users, restaurants and reservations. Entities hold
// identifiers, never each other; every lookup goes through here. Booking state is
// guarded by one lock per restaurant, handed to the use cases so the
// validate-select-commit sequence stays serialized.
type Store struct {
	mu sync.RWMutex

	usersByID       map[int]*users.User
	usersByName     map[string]*users.User
	restaurantsByID map[int]*restaurants.Restaurant
	restaurantNames map[string]struct{}
	restaurantOrder []int
	reservations    map[int]*reservations.Reservation
	bookingLocks    map[int]*sync.RWMutex

	nextUserID       int
	nextRestaurantID int
	reservationSeq   atomic.Int64
}

func NewStore() *Store {
	return &Store{
		usersByID:       make(map[int]*users.User),
		usersByName:     make(map[string]*users.User),
		restaurantsByID: make(map[int]*restaurants.Restaurant),
		restaurantNames: make(map[string]struct{}),
		reservations:    make(map[int]*reservations.Reservation),
		bookingLocks:    make(map[int]*sync.RWMutex),
	}
}

// AddUser registers a user under a fresh id. Usernames are unique.
func (s *Store) AddUser(username, password, email string, address users.Address, role users.Role) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usersByName[username]; taken {
		return nil, users.ErrUsernameTaken
	}
	s.nextUserID++
	user := users.New(s.nextUserID, username, password, email, address, role)
	s.usersByID[user.ID] = user
	s.usersByName[username] = user
	return user, nil
}

func (s *Store) User(id int) (*users.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByID[id]
	return user, ok
}

func (s *Store) UserByUsername(username string) (*users.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByName[username]
	return user, ok
}

// AddRestaurant registers a restaurant under a fresh id and creates its booking
// lock. Names are unique; opening hours are validated by the aggregate.
func (s *Store) AddRestaurant(name string, managerID int, cuisine string, opens, closes restaurants.TimeOfDay, description string, address users.Address, imageLink string) (*restaurants.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.restaurantNames[name]; taken {
		return nil, restaurants.ErrRestaurantNameTaken
	}
	restaurant, err := restaurants.New(s.nextRestaurantID+1, name, managerID, cuisine, opens, closes, description, address, imageLink)
	if err != nil {
		return nil, err
	}
	s.nextRestaurantID++
	s.restaurantsByID[restaurant.ID] = restaurant
	s.restaurantNames[name] = struct{}{}
	s.restaurantOrder = append(s.restaurantOrder, restaurant.ID)
	s.bookingLocks[restaurant.ID] = &sync.RWMutex{}
	return restaurant, nil
}

func (s *Store) Restaurant(id int) (*restaurants.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	restaurant, ok := s.restaurantsByID[id]
	return restaurant, ok
}

// Restaurants lists every restaurant in registration order.
func (s *Store) Restaurants() []*restaurants.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listed := make([]*restaurants.Restaurant, 0, len(s.restaurantOrder))
	for _, id := range s.restaurantOrder {
		listed = append(listed, s.restaurantsByID[id])
	}
	return listed
}

// BookingLock returns the lock serializing bookings for one restaurant. Callers
// take the write lock across validate-select-commit and the read lock for
// availability and listings.
func (s *Store) BookingLock(restaurantID int) *sync.RWMutex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookingLocks[restaurantID]
}

// NextReservationNumber hands out globally unique, monotonically increasing,
// never reused reservation numbers.
func (s *Store) NextReservationNumber() int {
	return int(s.reservationSeq.Add(1))
}

// RegisterReservation makes a committed reservation reachable by number.
func (s *Store) RegisterReservation(r *reservations.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.Number] = r
}

func (s *Store) Reservation(number int) (*reservations.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[number]
	return r, ok
}
