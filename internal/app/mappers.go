package app

import "travelassist/internal/domain"

// Price-level to rupee mappings for directory results. Levels run
// 0 (free) through 4 (very expensive); level 0 is folded into 1.
var (
	restaurantCostForTwo = [5]float64{200, 500, 1000, 2000, 3000}
	hotelPricePerNight   = [5]float64{1000, 3000, 5000, 10000, 20000}
)

func priceFor(table [5]float64, level int) float64 {
	if level < 0 {
		level = 0
	}
	if level > 4 {
		level = 4
	}
	return table[level]
}

// placeFromNearby folds a directory result into a local place row.
func placeFromNearby(np domain.NearbyPlace, kind domain.PlaceKind) domain.Place {
	id := np.GooglePlaceID
	p := domain.Place{
		GooglePlaceID: &id,
		Name:          np.Name,
		Kind:          kind,
		Lat:           np.Lat,
		Lon:           np.Lon,
		Rating:        np.Rating,
		Tags:          np.Tags,
		City:          np.City,
		State:         np.State,
		Address:       np.Address,
	}
	switch kind {
	case domain.KindRestaurant:
		cost := priceFor(restaurantCostForTwo, np.PriceLevel)
		p.AvgCostForTwo = &cost
	case domain.KindHotel:
		night := priceFor(hotelPricePerNight, np.PriceLevel)
		p.PricePerNight = &night
	}
	return p
}

// directoryType maps a place kind to the external directory's type filter.
func directoryType(kind domain.PlaceKind) string {
	switch kind {
	case domain.KindRestaurant:
		return "restaurant"
	case domain.KindHotel:
		return "lodging"
	default:
		return "hospital"
	}
}
