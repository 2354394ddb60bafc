package domain

import "time"

type BookingType string

const (
	BookingHotel      BookingType = "HOTEL"
	BookingRestaurant BookingType = "RESTAURANT"
)

func (t BookingType) Valid() bool {
	return t == BookingHotel || t == BookingRestaurant
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID        int64
	UserID    int64
	PlaceID   int64
	Type      BookingType
	Status    BookingStatus
	CreatedAt time.Time
}

// PaymentStatus tracks the lifecycle of a gateway transaction.
type PaymentStatus string

const (
	PaymentCreated    PaymentStatus = "CREATED"
	PaymentAuthorized PaymentStatus = "AUTHORIZED"
	PaymentCaptured   PaymentStatus = "CAPTURED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

type Transaction struct {
	ID        int64
	BookingID int64
	OrderID   string // gateway order id
	PaymentID *string
	Signature *string
	Amount    float64 // INR
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
