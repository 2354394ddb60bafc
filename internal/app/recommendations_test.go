package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelassist/internal/domain"
	"travelassist/internal/recommend"
)

var delhi = domain.Coords{Lat: 28.7041, Lon: 77.1025}

func newRecFixture(client *fakePlacesClient) (*RecommendationService, *fakeUserRepo, *fakePlaceRepo, *fakeCache) {
	users := newFakeUserRepo()
	places := newFakePlaceRepo()
	cache := newFakeCache()
	svc := NewRecommendationService(users, places, client, cache, recommend.NewKeywordScorer(), 15*time.Minute)
	return svc, users, places, cache
}

func seedUser(t *testing.T, users *fakeUserRepo) int64 {
	t.Helper()
	id, err := users.CreateUser(context.Background(), domain.User{
		Email:           "ana@example.com",
		HashedPassword:  "x",
		Diet:            pdiet(domain.DietVeg),
		DailyFoodBudget: pfloat(500),
		IsActive:        true,
		EmailVerified:   true,
	})
	require.NoError(t, err)
	return id
}

func TestRestaurants_UnknownUser(t *testing.T) {
	svc, _, _, _ := newRecFixture(&fakePlacesClient{})
	_, err := svc.Restaurants(context.Background(), 999, delhi, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurants_SyncsDirectoryResults(t *testing.T) {
	client := &fakePlacesClient{results: []domain.NearbyPlace{
		{
			GooglePlaceID: "gp-1",
			Name:          "Green Leaf",
			Lat:           28.705, Lon: 77.103,
			Rating:     pfloat(4.8),
			PriceLevel: 2,
			Tags:       []string{"restaurant", "vegan restaurant"},
		},
	}}
	svc, users, places, _ := newRecFixture(client)
	uid := seedUser(t, users)

	out, err := svc.Restaurants(context.Background(), uid, delhi, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Green Leaf", out[0].Place.Name)
	assert.Greater(t, out[0].FinalScore, 0.0)

	// Stored with the price-level mapping applied.
	stored, err := places.GetPlace(context.Background(), out[0].Place.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AvgCostForTwo)
	assert.Equal(t, 1000.0, *stored.AvgCostForTwo)
}

func TestRestaurants_FallsBackToStoredOnFetchError(t *testing.T) {
	client := &fakePlacesClient{err: errors.New("quota exceeded")}
	svc, users, places, _ := newRecFixture(client)
	uid := seedUser(t, users)

	_, err := places.UpsertPlace(context.Background(), domain.Place{
		Name: "Spicy Villa",
		Kind: domain.KindRestaurant,
		Lat:  28.706, Lon: 77.101,
		Rating:        pfloat(4.5),
		AvgCostForTwo: pfloat(600),
		Tags:          []string{"restaurant", "veg"},
	})
	require.NoError(t, err)

	out, err := svc.Restaurants(context.Background(), uid, delhi, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Spicy Villa", out[0].Place.Name)
}

func TestRestaurants_CacheHitSkipsDirectory(t *testing.T) {
	client := &fakePlacesClient{results: []domain.NearbyPlace{
		{GooglePlaceID: "gp-1", Name: "Green Leaf", Lat: 28.705, Lon: 77.103, Rating: pfloat(4.8), PriceLevel: 2, Tags: []string{"restaurant"}},
	}}
	svc, users, _, _ := newRecFixture(client)
	uid := seedUser(t, users)
	ctx := context.Background()

	first, err := svc.Restaurants(ctx, uid, delhi, 5)
	require.NoError(t, err)
	second, err := svc.Restaurants(ctx, uid, delhi, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, first, second)
}

func TestHotels_BudgetAffectsOrder(t *testing.T) {
	client := &fakePlacesClient{}
	svc, users, places, _ := newRecFixture(client)
	ctx := context.Background()

	uid, err := users.CreateUser(ctx, domain.User{
		Email: "bob@example.com", HashedPassword: "x",
		HotelBudgetPerNight: pfloat(3000),
		IsActive:            true, EmailVerified: true,
	})
	require.NoError(t, err)

	for _, h := range []struct {
		name  string
		price float64
	}{{"Budget Inn", 2500}, {"Grand Palace", 12000}} {
		_, err := places.UpsertPlace(ctx, domain.Place{
			Name: h.name, Kind: domain.KindHotel,
			Lat: 28.705, Lon: 77.103,
			Rating:        pfloat(4.0),
			PricePerNight: pfloat(h.price),
		})
		require.NoError(t, err)
	}

	out, err := svc.Hotels(ctx, uid, delhi, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Budget Inn", out[0].Place.Name)
}

func TestHospitals_NoUserNeeded(t *testing.T) {
	client := &fakePlacesClient{}
	svc, _, places, _ := newRecFixture(client)
	ctx := context.Background()

	_, err := places.UpsertPlace(ctx, domain.Place{
		Name: "City Hospital", Kind: domain.KindHospital,
		Lat: 28.71, Lon: 77.10, Rating: pfloat(4.2),
	})
	require.NoError(t, err)

	out, err := svc.Hospitals(ctx, delhi, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "City Hospital", out[0].Place.Name)
}

func TestGeocode(t *testing.T) {
	svc, _, _, _ := newRecFixture(&fakePlacesClient{})
	ctx := context.Background()

	_, err := svc.Geocode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	cs, err := svc.Geocode(ctx, "Delhi")
	require.NoError(t, err)
	assert.InDelta(t, 28.7041, cs.Lat, 0.001)
}
