package recommend

import "travelassist/internal/domain"

// Ranking weights. Each set sums to exactly 1.0 so the final score stays
// in [0,1] whenever every component does.
const (
	restaurantDietWeight   = 0.4
	restaurantRatingWeight = 0.2
	restaurantDistWeight   = 0.2
	restaurantBudgetWeight = 0.2

	hotelRatingWeight = 0.3
	hotelBudgetWeight = 0.4
	hotelDistWeight   = 0.3
)

// Distance beyond which the distance penalty is maximal.
const (
	restaurantMaxDistKm = 20.0
	hotelMaxDistKm      = 50.0
)

// budgetScore is 1.0 at or under budget (boundary inclusive) and decays
// as budget/cost when over, with no floor. A claimed over-budget cost of
// zero scores 0; it cannot happen with clean data but the rule is kept.
func budgetScore(cost, budget float64) float64 {
	if cost <= budget {
		return 1.0
	}
	if cost > 0 {
		return budget / cost
	}
	return 0.0
}

func distNorm(distanceKm, maxKm float64) float64 {
	n := distanceKm / maxKm
	if n > 1 {
		return 1
	}
	return n
}

// ScoreRestaurant combines diet compatibility, rating, distance and
// budget fit:
//
//	0.4*diet + 0.2*rating/5 + 0.2*(1-dist/20) + 0.2*budget
//
// dietScore is expected in [0,1]; absent rating and cost are treated as 0.
func ScoreRestaurant(user domain.User, place domain.Place, distanceKm, dietScore float64) float64 {
	ratingNorm := place.RatingValue() / 5.0
	dn := distNorm(distanceKm, restaurantMaxDistKm)

	costPerPerson := 0.0
	if place.AvgCostForTwo != nil {
		costPerPerson = *place.AvgCostForTwo / 2.0
	}
	bs := budgetScore(costPerPerson, user.FoodBudget())

	return restaurantDietWeight*dietScore +
		restaurantRatingWeight*ratingNorm +
		restaurantDistWeight*(1.0-dn) +
		restaurantBudgetWeight*bs
}

// ScoreHotel combines rating, budget fit and distance:
//
//	0.3*rating/5 + 0.4*budget + 0.3*(1-dist/50)
func ScoreHotel(user domain.User, place domain.Place, distanceKm float64) float64 {
	ratingNorm := place.RatingValue() / 5.0
	dn := distNorm(distanceKm, hotelMaxDistKm)

	price := 0.0
	if place.PricePerNight != nil {
		price = *place.PricePerNight
	}
	bs := budgetScore(price, user.HotelBudget())

	return hotelRatingWeight*ratingNorm +
		hotelBudgetWeight*bs +
		hotelDistWeight*(1.0-dn)
}
