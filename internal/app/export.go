package app

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"travelassist/internal/domain"
)

type ExportService struct {
	users    domain.UserRepository
	bookings domain.BookingRepository
	places   domain.PlaceRepository
}

func NewExportService(users domain.UserRepository, bookings domain.BookingRepository, places domain.PlaceRepository) *ExportService {
	return &ExportService{users: users, bookings: bookings, places: places}
}

// Users streams all accounts as CSV.
func (s *ExportService) Users(ctx context.Context, w io.Writer) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "email", "name", "age", "diet", "daily_food_budget", "hotel_budget_per_night", "email_verified", "created_at"}); err != nil {
		return err
	}
	for _, u := range users {
		rec := []string{
			strconv.FormatInt(u.ID, 10),
			u.Email,
			strOr(u.Name),
			intOr(u.Age),
			dietOr(u.Diet),
			floatOr(u.DailyFoodBudget),
			floatOr(u.HotelBudgetPerNight),
			strconv.FormatBool(u.EmailVerified),
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Bookings streams all bookings joined with the user's email and the
// place name.
func (s *ExportService) Bookings(ctx context.Context, w io.Writer) error {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return err
	}

	// Small tables; resolve names through per-id memoization rather
	// than a join query so the repos stay narrow.
	emails := map[int64]string{}
	names := map[int64]string{}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "user_email", "place_name", "type", "status", "created_at"}); err != nil {
		return err
	}
	for _, b := range bookings {
		email, ok := emails[b.UserID]
		if !ok {
			u, err := s.users.GetUser(ctx, b.UserID)
			if err != nil {
				return err
			}
			email = u.Email
			emails[b.UserID] = email
		}
		name, ok := names[b.PlaceID]
		if !ok {
			p, err := s.places.GetPlace(ctx, b.PlaceID)
			if err != nil {
				return err
			}
			name = p.Name
			names[b.PlaceID] = name
		}

		rec := []string{
			strconv.FormatInt(b.ID, 10),
			email,
			name,
			string(b.Type),
			string(b.Status),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
func intOr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
func floatOr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
func dietOr(p *domain.DietType) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
