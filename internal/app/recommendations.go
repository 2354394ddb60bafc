package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"travelassist/internal/adapters/observability"
	"travelassist/internal/domain"
	"travelassist/internal/recommend"
)

type RecommendationService struct {
	users    domain.UserRepository
	places   domain.PlaceRepository
	client   domain.PlacesClient
	cache    domain.Cache
	scorer   recommend.DietScorer
	cacheTTL time.Duration
}

func NewRecommendationService(
	users domain.UserRepository,
	places domain.PlaceRepository,
	client domain.PlacesClient,
	cache domain.Cache,
	scorer recommend.DietScorer,
	cacheTTL time.Duration,
) *RecommendationService {
	return &RecommendationService{
		users:    users,
		places:   places,
		client:   client,
		cache:    cache,
		scorer:   scorer,
		cacheTTL: cacheTTL,
	}
}

// Recommendation is one ranked result as served to clients.
type Recommendation struct {
	Place      domain.Place `json:"place"`
	DistanceKm float64      `json:"distance_km"`
	DietScore  float64      `json:"diet_score,omitempty"`
	FinalScore float64      `json:"final_score"`
}

func (s *RecommendationService) Restaurants(ctx context.Context, userID int64, origin domain.Coords, radiusKm float64) ([]Recommendation, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := cacheKey("restaurants", userID, origin, radiusKm)
	var cached []Recommendation
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	places := s.fetchPlaces(ctx, origin, radiusKm, domain.KindRestaurant)
	ids := make([]int64, len(places))
	for i, p := range places {
		ids[i] = p.ID
	}
	menus, err := s.places.ListMenuItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	observability.ObserveRanking("restaurant", len(places))
	scored := recommend.RankRestaurants(u, origin, radiusKm, places, menus, s.scorer)
	out := toRecommendations(scored)
	_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	return out, nil
}

func (s *RecommendationService) Hotels(ctx context.Context, userID int64, origin domain.Coords, radiusKm float64) ([]Recommendation, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := cacheKey("hotels", userID, origin, radiusKm)
	var cached []Recommendation
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	places := s.fetchPlaces(ctx, origin, radiusKm, domain.KindHotel)
	observability.ObserveRanking("hotel", len(places))
	out := toRecommendations(recommend.RankHotels(u, origin, radiusKm, places))
	_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	return out, nil
}

// Hospitals needs no user profile; results are ordered by proximity.
func (s *RecommendationService) Hospitals(ctx context.Context, origin domain.Coords, radiusKm float64) ([]Recommendation, error) {
	key := cacheKey("hospitals", 0, origin, radiusKm)
	var cached []Recommendation
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	places := s.fetchPlaces(ctx, origin, radiusKm, domain.KindHospital)
	observability.ObserveRanking("hospital", len(places))
	out := toRecommendations(recommend.NearbyHospitals(origin, radiusKm, places))
	_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	return out, nil
}

func (s *RecommendationService) Geocode(ctx context.Context, address string) (domain.Coords, error) {
	if address == "" {
		return domain.Coords{}, fmt.Errorf("empty address: %w", domain.ErrInvalid)
	}
	return s.client.Geocode(ctx, address)
}

// fetchPlaces pulls live results from the directory and folds them into
// the store. When the fetch fails or comes back empty it serves whatever
// is already stored, so a directory outage degrades instead of erroring.
func (s *RecommendationService) fetchPlaces(ctx context.Context, origin domain.Coords, radiusKm float64, kind domain.PlaceKind) []domain.Place {
	nearby, err := s.client.SearchNearby(ctx, origin.Lat, origin.Lon, radiusKm, directoryType(kind))
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("place search failed, using stored places")
	}

	var synced []domain.Place
	for _, np := range nearby {
		p, err := s.places.UpsertPlace(ctx, placeFromNearby(np, kind))
		if err != nil {
			log.Warn().Err(err).Str("place", np.Name).Msg("place sync failed")
			continue
		}
		synced = append(synced, p)
	}
	if len(synced) > 0 {
		return synced
	}

	stored, err := s.places.ListPlacesByKind(ctx, kind)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("stored place lookup failed")
		return nil
	}
	return stored
}

func toRecommendations(scored []recommend.Scored) []Recommendation {
	out := make([]Recommendation, len(scored))
	for i, sc := range scored {
		out[i] = Recommendation{
			Place:      sc.Place,
			DistanceKm: sc.DistanceKm,
			DietScore:  sc.DietScore,
			FinalScore: sc.FinalScore,
		}
	}
	return out
}

// cacheKey rounds coordinates to ~11m so nearby requests share entries.
func cacheKey(kind string, userID int64, origin domain.Coords, radiusKm float64) string {
	return fmt.Sprintf("recs:%s:%d:%.4f:%.4f:%.1f", kind, userID, origin.Lat, origin.Lon, radiusKm)
}
