package usecase

import (
	"log/slog"

	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tables "mesaYaCore/internal/modules/tables/domain"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/platform/registry"
)

// RestaurantUseCase covers restaurant and table registration plus the simple
// catalogue reads.
type RestaurantUseCase struct {
	store *registry.Store
}

func NewRestaurantUseCase(store *registry.Store) *RestaurantUseCase {
	return &RestaurantUseCase{store: store}
}

type CreateRestaurantInput struct {
	Name        string
	Cuisine     string
	Opens       restaurants.TimeOfDay
	Closes      restaurants.TimeOfDay
	Description string
	Address     users.Address
	ImageLink   string
}

// Create registers a restaurant managed by the acting user, who must hold the
// manager role.
func (uc *RestaurantUseCase) Create(actingUserID int, input CreateRestaurantInput) (*restaurants.Restaurant, error) {
	user, ok := uc.store.User(actingUserID)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	if !user.IsManager() {
		return nil, users.ErrUserNotManager
	}
	restaurant, err := uc.store.AddRestaurant(input.Name, user.ID, input.Cuisine, input.Opens, input.Closes, input.Description, input.Address, input.ImageLink)
	if err != nil {
		return nil, err
	}
	slog.Info("restaurant registered", slog.Int("restaurantId", restaurant.ID), slog.String("name", restaurant.Name))
	return restaurant, nil
}

func (uc *RestaurantUseCase) Get(restaurantID int) (*restaurants.Restaurant, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (uc *RestaurantUseCase) List() []*restaurants.Restaurant {
	return uc.store.Restaurants()
}

// AddTable registers a table on the acting manager's own restaurant. Capacity
// positivity is the request layer's responsibility.
func (uc *RestaurantUseCase) AddTable(restaurantID, actingUserID, capacity int) (*tables.Table, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	user, ok := uc.store.User(actingUserID)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	if !user.IsManager() {
		return nil, users.ErrUserNotManager
	}
	if restaurant.ManagerID != user.ID {
		return nil, restaurants.ErrInvalidManagerRestaurant
	}

	lock := uc.store.BookingLock(restaurantID)
	lock.Lock()
	table := restaurant.AddTable(capacity)
	lock.Unlock()
	slog.Info("table added", slog.Int("restaurantId", restaurantID), slog.Int("tableNumber", table.Number), slog.Int("seats", capacity))
	return table, nil
}

// Tables lists a restaurant's tables in registration order.
func (uc *RestaurantUseCase) Tables(restaurantID int) ([]*tables.Table, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	lock := uc.store.BookingLock(restaurantID)
	lock.RLock()
	defer lock.RUnlock()
	return restaurant.Tables(), nil
}
