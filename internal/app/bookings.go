package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"travelassist/internal/domain"
)

type BookingService struct {
	bookings domain.BookingRepository
	users    domain.UserRepository
	places   domain.PlaceRepository
	mailer   domain.Mailer
}

func NewBookingService(
	bookings domain.BookingRepository,
	users domain.UserRepository,
	places domain.PlaceRepository,
	mailer domain.Mailer,
) *BookingService {
	return &BookingService{bookings: bookings, users: users, places: places, mailer: mailer}
}

// Create books a place for a user. The booking type must match the
// place kind; hospitals are not bookable. The confirmation email is
// best effort.
func (s *BookingService) Create(ctx context.Context, userID, placeID int64, typ domain.BookingType) (domain.Booking, error) {
	if !typ.Valid() {
		return domain.Booking{}, fmt.Errorf("unknown booking type %q: %w", typ, domain.ErrInvalid)
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Booking{}, err
	}
	p, err := s.places.GetPlace(ctx, placeID)
	if err != nil {
		return domain.Booking{}, err
	}
	if string(typ) != string(p.Kind) {
		return domain.Booking{}, fmt.Errorf("booking type %s does not match place kind %s: %w",
			typ, p.Kind, domain.ErrInvalid)
	}

	b, err := s.bookings.CreateBooking(ctx, domain.Booking{
		UserID:  userID,
		PlaceID: placeID,
		Type:    typ,
		Status:  domain.BookingConfirmed,
	})
	if err != nil {
		return domain.Booking{}, err
	}

	if err := s.mailer.SendBookingConfirmation(ctx, u.Email, domain.BookingEmail{
		UserName:  displayName(u),
		PlaceName: p.Name,
		Date:      b.CreatedAt,
		Status:    b.Status,
	}); err != nil {
		log.Warn().Err(err).Int64("booking_id", b.ID).Msg("confirmation email failed")
	}
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if b.UserID != userID {
		return domain.Booking{}, domain.ErrForbidden
	}
	return b, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListUserBookings(ctx, userID)
}

// Cancel marks a booking CANCELLED. Only the owner can cancel, and
// cancelling twice is a no-op error.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int64) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if b.UserID != userID {
		return domain.Booking{}, domain.ErrForbidden
	}
	if b.Status == domain.BookingCancelled {
		return domain.Booking{}, fmt.Errorf("booking already cancelled: %w", domain.ErrInvalid)
	}
	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingCancelled
	return b, nil
}
