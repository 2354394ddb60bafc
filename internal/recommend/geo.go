// Package recommend ranks nearby places for a user by combining diet
// compatibility, rating, distance and budget fit into weighted scores.
package recommend

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two WGS84
// coordinates using the Haversine formula. Inputs are degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	// Guard asin against floating-point overshoot past 1.
	s := math.Sqrt(a)
	if s > 1 {
		s = 1
	}
	return 2 * earthRadiusKm * math.Asin(s)
}
