package domain

// PlaceKind classifies a place; hospitals are informational only and
// cannot be booked.
type PlaceKind string

const (
	KindRestaurant PlaceKind = "RESTAURANT"
	KindHotel      PlaceKind = "HOTEL"
	KindHospital   PlaceKind = "HOSPITAL"
)

func (k PlaceKind) Valid() bool {
	switch k {
	case KindRestaurant, KindHotel, KindHospital:
		return true
	}
	return false
}

type Coords struct{ Lat, Lon float64 }

type Place struct {
	ID            int64
	GooglePlaceID *string
	Name          string
	Kind          PlaceKind
	Lat, Lon      float64
	Rating        *float64 // 0..5, absent treated as 0 when scoring
	AvgCostForTwo *float64 // restaurants only
	PricePerNight *float64 // hotels only
	Tags          []string
	City          *string
	State         *string
	Address       *string
}

// RatingValue returns the rating with absent treated as 0.
func (p Place) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

type MenuItem struct {
	ID          int64
	PlaceID     int64
	Name        string
	Description *string
	Tags        []string
}
