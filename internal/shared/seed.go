package shared

import "travelassist/internal/domain"

// SeedPlace is one mock place plus its menu, inserted by cmd/seeder
// into an empty database so the API works without a directory key.
type SeedPlace struct {
	Place domain.Place
	Menu  []domain.MenuItem
}

func pf(f float64) *float64 { return &f }
func ps(s string) *string   { return &s }

// SeedPlaces is the development dataset around central Delhi.
var SeedPlaces = []SeedPlace{
	{
		Place: domain.Place{
			Name: "Spicy Villa", Kind: domain.KindRestaurant,
			Lat: 28.6315, Lon: 77.2167,
			Rating:        pf(4.5),
			AvgCostForTwo: pf(600),
			Tags:          []string{"restaurant", "indian", "north indian"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
		Menu: []domain.MenuItem{
			{Name: "Paneer Tikka", Description: ps("Char-grilled cottage cheese"), Tags: []string{"veg", "starter"}},
			{Name: "Butter Chicken", Description: ps("Creamy tomato gravy"), Tags: []string{"non_veg", "main"}},
			{Name: "Dal Makhani", Description: ps("Slow-cooked black lentils"), Tags: []string{"veg", "main"}},
		},
	},
	{
		Place: domain.Place{
			Name: "Green Leaf", Kind: domain.KindRestaurant,
			Lat: 28.6358, Lon: 77.2245,
			Rating:        pf(4.8),
			AvgCostForTwo: pf(1200),
			Tags:          []string{"restaurant", "vegan restaurant", "salads"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
		Menu: []domain.MenuItem{
			{Name: "Vegan Buddha Bowl", Description: ps("Quinoa, greens and tofu"), Tags: []string{"vegan", "salad"}},
			{Name: "Jain Thali", Description: ps("No onion no garlic platter"), Tags: []string{"jain", "veg"}},
			{Name: "Keto Salad", Description: ps("Low carb, high fiber"), Tags: []string{"keto", "low carb", "salad"}},
		},
	},
	{
		Place: domain.Place{
			Name: "Burger King", Kind: domain.KindRestaurant,
			Lat: 28.6290, Lon: 77.2065,
			Rating:        pf(3.9),
			AvgCostForTwo: pf(400),
			Tags:          []string{"restaurant", "fast food", "burgers"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
		Menu: []domain.MenuItem{
			{Name: "Whopper", Description: ps("Flame-grilled beef burger"), Tags: []string{"non_veg", "beef", "burger"}},
			{Name: "Crispy Veg Burger", Description: ps("Fried vegetable patty"), Tags: []string{"veg", "fried", "burger"}},
		},
	},
	{
		Place: domain.Place{
			Name: "Sagar Ratna", Kind: domain.KindRestaurant,
			Lat: 28.6225, Lon: 77.2100,
			Rating:        pf(4.3),
			AvgCostForTwo: pf(500),
			Tags:          []string{"restaurant", "south indian", "vegetarian"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
		Menu: []domain.MenuItem{
			{Name: "Masala Dosa", Description: ps("Rice crepe with potato filling"), Tags: []string{"veg", "south indian"}},
			{Name: "Idli Sambar", Description: ps("Steamed rice cakes"), Tags: []string{"veg", "steamed", "south indian"}},
		},
	},
	{
		Place: domain.Place{
			Name: "The Imperial", Kind: domain.KindHotel,
			Lat: 28.6253, Lon: 77.2185,
			Rating:        pf(4.7),
			PricePerNight: pf(15000),
			Tags:          []string{"hotel", "luxury"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
	},
	{
		Place: domain.Place{
			Name: "Hotel City Centre", Kind: domain.KindHotel,
			Lat: 28.6420, Lon: 77.2210,
			Rating:        pf(4.0),
			PricePerNight: pf(3500),
			Tags:          []string{"hotel", "budget"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
	},
	{
		Place: domain.Place{
			Name: "Backpackers Inn", Kind: domain.KindHotel,
			Lat: 28.6390, Lon: 77.2090,
			Rating:        pf(3.8),
			PricePerNight: pf(1200),
			Tags:          []string{"hotel", "hostel"},
			City:          ps("New Delhi"), State: ps("Delhi"),
		},
	},
	{
		Place: domain.Place{
			Name: "AIIMS Delhi", Kind: domain.KindHospital,
			Lat: 28.5672, Lon: 77.2100,
			Rating: pf(4.6),
			Tags:   []string{"hospital", "government"},
			City:   ps("New Delhi"), State: ps("Delhi"),
		},
	},
	{
		Place: domain.Place{
			Name: "Max Super Speciality", Kind: domain.KindHospital,
			Lat: 28.6280, Lon: 77.2230,
			Rating: pf(4.4),
			Tags:   []string{"hospital", "private"},
			City:   ps("New Delhi"), State: ps("Delhi"),
		},
	},
}
