package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	realtime "mesaYaCore/internal/modules/realtime/domain"
	"mesaYaCore/internal/modules/reservations/application/port"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	reviews "mesaYaCore/internal/modules/reviews/domain"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/platform/registry"
)

// ReviewUseCase maintains one review per user per restaurant and serves the
// aggregated rating reads.
type ReviewUseCase struct {
	store  *registry.Store
	events port.EventPublisher
	now    func() time.Time
}

func NewReviewUseCase(store *registry.Store, events port.EventPublisher) *ReviewUseCase {
	return &ReviewUseCase{store: store, events: events, now: time.Now}
}

// AddReview validates eligibility, then appends the review, replacing any prior
// one by the same user so the newest submission sits at the end.
func (uc *ReviewUseCase) AddReview(ctx context.Context, restaurantID, userID int, rating reviews.Rating, comment string) (*reviews.Review, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	user, ok := uc.store.User(userID)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	if user.ID == restaurant.ManagerID {
		return nil, reviews.ErrManagerCannotReview
	}
	if !rating.Valid() {
		return nil, reviews.ErrInvalidReviewRating
	}
	if !user.HasVisited(restaurantID, uc.now()) {
		return nil, reviews.ErrUserHasNotReserved
	}

	review := reviews.New(user, rating, comment, uc.now())
	lock := uc.store.BookingLock(restaurantID)
	lock.Lock()
	restaurant.AddReview(review)
	lock.Unlock()

	slog.Info("review added",
		slog.Int("restaurantId", restaurant.ID),
		slog.Int("userId", user.ID),
		slog.Int("stars", rating.StarCount()),
	)
	if uc.events != nil {
		metadata := map[string]string{"restaurantId": strconv.Itoa(restaurant.ID)}
		uc.events.Publish(ctx, realtime.NewEvent(realtime.EntityReviews, realtime.ActionCreated, strconv.Itoa(restaurant.ID), review, metadata, uc.now()))
	}
	return review, nil
}

// Reviews lists the retained reviews in submission order.
func (uc *ReviewUseCase) Reviews(restaurantID int) ([]*reviews.Review, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	lock := uc.store.BookingLock(restaurantID)
	lock.RLock()
	defer lock.RUnlock()
	return restaurant.Reviews(), nil
}

// AverageRating returns the component-wise mean, all zeros without reviews.
func (uc *ReviewUseCase) AverageRating(restaurantID int) (reviews.Rating, error) {
	restaurant, ok := uc.store.Restaurant(restaurantID)
	if !ok {
		return reviews.Rating{}, restaurants.ErrRestaurantNotFound
	}
	lock := uc.store.BookingLock(restaurantID)
	lock.RLock()
	defer lock.RUnlock()
	return restaurant.AverageRating(), nil
}
