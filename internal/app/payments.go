package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"travelassist/internal/domain"
)

type PaymentService struct {
	transactions domain.TransactionRepository
	bookings     domain.BookingRepository
	places       domain.PlaceRepository
	gateway      domain.PaymentGateway
}

func NewPaymentService(
	transactions domain.TransactionRepository,
	bookings domain.BookingRepository,
	places domain.PlaceRepository,
	gateway domain.PaymentGateway,
) *PaymentService {
	return &PaymentService{transactions: transactions, bookings: bookings, places: places, gateway: gateway}
}

// OrderResult carries what the client checkout needs.
type OrderResult struct {
	Transaction domain.Transaction `json:"transaction"`
	KeyID       string             `json:"key_id"`
}

// CreateOrder opens a gateway order for a booking. One transaction per
// booking; the amount comes from the booked place's price.
func (s *PaymentService) CreateOrder(ctx context.Context, userID, bookingID int64) (OrderResult, error) {
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return OrderResult{}, err
	}
	if b.UserID != userID {
		return OrderResult{}, domain.ErrForbidden
	}
	if _, err := s.transactions.GetTransactionByBooking(ctx, bookingID); err == nil {
		return OrderResult{}, fmt.Errorf("booking already has a payment: %w", domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return OrderResult{}, err
	}

	amount, err := s.bookingAmount(ctx, b)
	if err != nil {
		return OrderResult{}, err
	}

	order, err := s.gateway.CreateOrder(ctx, amount, "INR", fmt.Sprintf("booking_%d", bookingID))
	if err != nil {
		return OrderResult{}, err
	}

	t, err := s.transactions.CreateTransaction(ctx, domain.Transaction{
		BookingID: bookingID,
		OrderID:   order.ID,
		Amount:    amount,
		Currency:  order.Currency,
		Status:    domain.PaymentCreated,
	})
	if err != nil {
		return OrderResult{}, err
	}
	return OrderResult{Transaction: t, KeyID: s.gateway.KeyID()}, nil
}

// Verify settles a checkout callback. A valid signature captures the
// transaction and confirms the booking; an invalid one marks it FAILED.
func (s *PaymentService) Verify(ctx context.Context, userID int64, orderID, paymentID, signature string) (domain.Transaction, error) {
	t, err := s.transactions.GetTransactionByOrder(ctx, orderID)
	if err != nil {
		return domain.Transaction{}, err
	}
	b, err := s.bookings.GetBooking(ctx, t.BookingID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if b.UserID != userID {
		return domain.Transaction{}, domain.ErrForbidden
	}

	t.PaymentID = &paymentID
	t.Signature = &signature

	if !s.gateway.VerifyPayment(orderID, paymentID, signature) {
		t.Status = domain.PaymentFailed
		if uerr := s.transactions.UpdateTransaction(ctx, t); uerr != nil {
			log.Error().Err(uerr).Str("order_id", orderID).Msg("failed to record failed payment")
		}
		return domain.Transaction{}, fmt.Errorf("payment signature mismatch: %w", domain.ErrInvalid)
	}

	t.Status = domain.PaymentCaptured
	if err := s.transactions.UpdateTransaction(ctx, t); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.bookings.UpdateBookingStatus(ctx, t.BookingID, domain.BookingConfirmed); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

// GetByBooking returns a booking's transaction, owner only.
func (s *PaymentService) GetByBooking(ctx context.Context, userID, bookingID int64) (domain.Transaction, error) {
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if b.UserID != userID {
		return domain.Transaction{}, domain.ErrForbidden
	}
	return s.transactions.GetTransactionByBooking(ctx, bookingID)
}

// HandleWebhook applies a gateway event after signature verification
// over the raw body.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature, event, orderID string) error {
	if !s.gateway.VerifyWebhook(payload, signature) {
		return fmt.Errorf("webhook signature mismatch: %w", domain.ErrUnauthorized)
	}
	t, err := s.transactions.GetTransactionByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	switch event {
	case "payment.authorized":
		t.Status = domain.PaymentAuthorized
	case "payment.captured":
		t.Status = domain.PaymentCaptured
	case "payment.failed":
		t.Status = domain.PaymentFailed
	case "refund.processed":
		t.Status = domain.PaymentRefunded
	default:
		log.Debug().Str("event", event).Msg("ignoring webhook event")
		return nil
	}
	if err := s.transactions.UpdateTransaction(ctx, t); err != nil {
		return err
	}
	if t.Status == domain.PaymentCaptured {
		return s.bookings.UpdateBookingStatus(ctx, t.BookingID, domain.BookingConfirmed)
	}
	return nil
}

func (s *PaymentService) bookingAmount(ctx context.Context, b domain.Booking) (float64, error) {
	p, err := s.places.GetPlace(ctx, b.PlaceID)
	if err != nil {
		return 0, err
	}
	switch b.Type {
	case domain.BookingHotel:
		if p.PricePerNight != nil {
			return *p.PricePerNight, nil
		}
	case domain.BookingRestaurant:
		if p.AvgCostForTwo != nil {
			return *p.AvgCostForTwo, nil
		}
	}
	return 0, fmt.Errorf("place %d has no price for booking type %s: %w", p.ID, b.Type, domain.ErrInvalid)
}
