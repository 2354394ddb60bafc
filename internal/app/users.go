package app

import (
	"context"
	"fmt"

	"travelassist/internal/domain"
)

const searchHistoryLimit = 10

type UserService struct {
	users  domain.UserRepository
	places domain.PlaceRepository
}

func NewUserService(users domain.UserRepository, places domain.PlaceRepository) *UserService {
	return &UserService{users: users, places: places}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

type ProfileUpdate struct {
	Name                *string
	Age                 *int
	Diet                *domain.DietType
	DailyFoodBudget     *float64
	HotelBudgetPerNight *float64
	AvatarURL           *string
}

// UpdateProfile applies the provided fields; nil fields are untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (domain.User, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if in.Age != nil && (*in.Age < 13 || *in.Age > 120) {
		return domain.User{}, fmt.Errorf("age must be between 13 and 120: %w", domain.ErrInvalid)
	}
	if in.Diet != nil && !in.Diet.Valid() {
		return domain.User{}, fmt.Errorf("unknown diet type %q: %w", *in.Diet, domain.ErrInvalid)
	}
	if in.DailyFoodBudget != nil && *in.DailyFoodBudget < 0 {
		return domain.User{}, fmt.Errorf("food budget cannot be negative: %w", domain.ErrInvalid)
	}
	if in.HotelBudgetPerNight != nil && *in.HotelBudgetPerNight < 0 {
		return domain.User{}, fmt.Errorf("hotel budget cannot be negative: %w", domain.ErrInvalid)
	}

	if in.Name != nil {
		u.Name = in.Name
	}
	if in.Age != nil {
		u.Age = in.Age
	}
	if in.Diet != nil {
		u.Diet = in.Diet
	}
	if in.DailyFoodBudget != nil {
		u.DailyFoodBudget = in.DailyFoodBudget
	}
	if in.HotelBudgetPerNight != nil {
		u.HotelBudgetPerNight = in.HotelBudgetPerNight
	}
	if in.AvatarURL != nil {
		u.AvatarURL = in.AvatarURL
	}

	if err := s.users.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// AddFavorite is idempotent: favoriting an already-favorited place
// returns the existing row.
func (s *UserService) AddFavorite(ctx context.Context, userID, placeID int64) (domain.Favorite, error) {
	if _, err := s.places.GetPlace(ctx, placeID); err != nil {
		return domain.Favorite{}, err
	}
	f, err := s.users.AddFavorite(ctx, userID, placeID)
	if err == domain.ErrAlreadyExists {
		favs, lerr := s.users.ListFavorites(ctx, userID)
		if lerr != nil {
			return domain.Favorite{}, lerr
		}
		for _, fav := range favs {
			if fav.PlaceID == placeID {
				return fav, nil
			}
		}
	}
	return f, err
}

func (s *UserService) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.users.ListFavorites(ctx, userID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, placeID int64) error {
	return s.users.RemoveFavorite(ctx, userID, placeID)
}

func (s *UserService) AddSearchEntry(ctx context.Context, userID int64, query string, location *string) (domain.SearchEntry, error) {
	if query == "" {
		return domain.SearchEntry{}, fmt.Errorf("empty query: %w", domain.ErrInvalid)
	}
	return s.users.AddSearchEntry(ctx, domain.SearchEntry{UserID: userID, Query: query, Location: location})
}

func (s *UserService) ListSearchEntries(ctx context.Context, userID int64) ([]domain.SearchEntry, error) {
	return s.users.ListSearchEntries(ctx, userID, searchHistoryLimit)
}
