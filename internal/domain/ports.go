package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (int64, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByResetToken(ctx context.Context, token string) (User, error)
	UpdateUser(ctx context.Context, u User) error
	ListUsers(ctx context.Context) ([]User, error)

	AddFavorite(ctx context.Context, userID, placeID int64) (Favorite, error)
	ListFavorites(ctx context.Context, userID int64) ([]Favorite, error)
	RemoveFavorite(ctx context.Context, userID, placeID int64) error

	AddSearchEntry(ctx context.Context, e SearchEntry) (SearchEntry, error)
	ListSearchEntries(ctx context.Context, userID int64, limit int) ([]SearchEntry, error)
}

type PlaceRepository interface {
	UpsertPlace(ctx context.Context, p Place) (Place, error)
	GetPlace(ctx context.Context, id int64) (Place, error)
	ListPlacesByKind(ctx context.Context, kind PlaceKind) ([]Place, error)
	InsertMenuItem(ctx context.Context, m MenuItem) (int64, error)
	ListMenuItems(ctx context.Context, placeIDs []int64) (map[int64][]MenuItem, error)
	UpdatePlaceRating(ctx context.Context, placeID int64, rating float64) error
	CountPlaces(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status BookingStatus) error
	ListBookings(ctx context.Context) ([]Booking, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, t Transaction) (Transaction, error)
	GetTransactionByBooking(ctx context.Context, bookingID int64) (Transaction, error)
	GetTransactionByOrder(ctx context.Context, orderID string) (Transaction, error)
	UpdateTransaction(ctx context.Context, t Transaction) error
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, r Review) (Review, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	ListPlaceReviews(ctx context.Context, placeID int64) ([]Review, error)
	ListUserReviews(ctx context.Context, userID int64) ([]Review, error)
	UpdateReview(ctx context.Context, r Review) error
	DeleteReview(ctx context.Context, id int64) error
	IncrementHelpful(ctx context.Context, id int64) (int, error)
	AverageRating(ctx context.Context, placeID int64) (float64, int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// NearbyPlace is one result from the external place directory, before it
// is folded into the local store.
type NearbyPlace struct {
	GooglePlaceID string
	Name          string
	Lat, Lon      float64
	Rating        *float64
	PriceLevel    int // 0..4
	Tags          []string
	City          *string
	State         *string
	Address       *string
}

type PlacesClient interface {
	// SearchNearby returns places of the given directory type
	// (restaurant|lodging|hospital) within radiusKm of the origin.
	SearchNearby(ctx context.Context, lat, lon, radiusKm float64, placeType string) ([]NearbyPlace, error)
	Geocode(ctx context.Context, address string) (Coords, error)
}

// WeatherReport is the current-plus-forecast payload served to clients.
type WeatherReport struct {
	Current  WeatherNow        `json:"current"`
	Forecast []WeatherForecast `json:"forecast"`
}

type WeatherNow struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Pressure    int     `json:"pressure"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
}

type WeatherForecast struct {
	Unix        int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Date        string  `json:"date"`
}

type WeatherClient interface {
	Fetch(ctx context.Context, lat, lon float64) (WeatherReport, error)
}

// GatewayOrder is the order record returned by the payment provider.
type GatewayOrder struct {
	ID       string
	Amount   int64 // smallest currency unit
	Currency string
	Receipt  string
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (GatewayOrder, error)
	// VerifyPayment checks the checkout signature over "orderID|paymentID".
	VerifyPayment(orderID, paymentID, signature string) bool
	// VerifyWebhook checks the webhook signature over the raw request body.
	VerifyWebhook(payload []byte, signature string) bool
	KeyID() string
}

type BookingEmail struct {
	UserName  string
	PlaceName string
	Date      time.Time
	Status    BookingStatus
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to string, b BookingEmail) error
	SendOTP(ctx context.Context, to, name, code string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}
