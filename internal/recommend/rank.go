package recommend

import (
	"sort"
	"strings"

	"travelassist/internal/domain"
)

// Result list caps per place kind.
const (
	MaxRestaurants = 10
	MaxHotels      = 10
	MaxHospitals   = 5
)

// Scored is a place candidate with its computed distance and scores.
// It lives only for the duration of one ranking call.
type Scored struct {
	Place      domain.Place
	DistanceKm float64
	DietScore  float64 // restaurants only
	FinalScore float64 // zero for hospitals, which are unscored
}

// RankRestaurants filters places to the radius (boundary inclusive),
// scores survivors against the user's diet and budget and returns the
// top results by final score. menus supplies menu items per place id for
// the diet text blob; missing entries are fine.
func RankRestaurants(user domain.User, origin domain.Coords, radiusKm float64, places []domain.Place, menus map[int64][]domain.MenuItem, scorer DietScorer) []Scored {
	diet := domain.DietType("")
	if user.Diet != nil {
		diet = *user.Diet
	}

	var out []Scored
	for _, p := range places {
		d := DistanceKm(origin.Lat, origin.Lon, p.Lat, p.Lon)
		if d > radiusKm {
			continue
		}
		ds := scorer.Predict(diet, menuText(p, menus[p.ID]))
		out = append(out, Scored{
			Place:      p,
			DistanceKm: d,
			DietScore:  ds,
			FinalScore: ScoreRestaurant(user, p, d, ds),
		})
	}
	sortByScore(out)
	return truncate(out, MaxRestaurants)
}

// RankHotels is the hotel variant: no diet term, hotel weights.
func RankHotels(user domain.User, origin domain.Coords, radiusKm float64, places []domain.Place) []Scored {
	var out []Scored
	for _, p := range places {
		d := DistanceKm(origin.Lat, origin.Lon, p.Lat, p.Lon)
		if d > radiusKm {
			continue
		}
		out = append(out, Scored{
			Place:      p,
			DistanceKm: d,
			FinalScore: ScoreHotel(user, p, d),
		})
	}
	sortByScore(out)
	return truncate(out, MaxHotels)
}

// NearbyHospitals is informational only: no weighted score, ordered by
// distance ascending with rating descending as tie-break.
func NearbyHospitals(origin domain.Coords, radiusKm float64, places []domain.Place) []Scored {
	var out []Scored
	for _, p := range places {
		d := DistanceKm(origin.Lat, origin.Lon, p.Lat, p.Lon)
		if d > radiusKm {
			continue
		}
		out = append(out, Scored{Place: p, DistanceKm: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Place.RatingValue() > out[j].Place.RatingValue()
	})
	return truncate(out, MaxHospitals)
}

// menuText builds the diet blob: place name, tags, then each menu item's
// name and description.
func menuText(p domain.Place, items []domain.MenuItem) string {
	var b strings.Builder
	b.WriteString(p.Name)
	for _, t := range p.Tags {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	for _, m := range items {
		b.WriteByte(' ')
		b.WriteString(m.Name)
		if m.Description != nil {
			b.WriteByte(' ')
			b.WriteString(*m.Description)
		}
	}
	return b.String()
}

// Stable sort keeps the order among exactly-equal scores deterministic
// for identical inputs.
func sortByScore(s []Scored) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].FinalScore > s[j].FinalScore })
}

func truncate(s []Scored, n int) []Scored {
	if len(s) > n {
		return s[:n]
	}
	return s
}
