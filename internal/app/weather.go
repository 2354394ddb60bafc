package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"travelassist/internal/domain"
)

type WeatherService struct {
	client   *weatherSource
	cache    domain.Cache
	cacheTTL time.Duration
}

// weatherSource wraps the real client so a nil/unconfigured client
// cleanly selects the mock.
type weatherSource struct {
	client     domain.WeatherClient
	configured bool
}

func NewWeatherService(client domain.WeatherClient, configured bool, cache domain.Cache, ttl time.Duration) *WeatherService {
	return &WeatherService{
		client:   &weatherSource{client: client, configured: configured},
		cache:    cache,
		cacheTTL: ttl,
	}
}

// Report returns current weather plus a short forecast. Without an API
// key, or when the upstream call fails, a deterministic mock payload is
// served so the endpoint always answers.
func (s *WeatherService) Report(ctx context.Context, lat, lon float64) (domain.WeatherReport, error) {
	key := fmt.Sprintf("weather:%.4f:%.4f", lat, lon)
	var cached domain.WeatherReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	if !s.client.configured {
		return mockReport(time.Now()), nil
	}

	report, err := s.client.client.Fetch(ctx, lat, lon)
	if err != nil {
		log.Warn().Err(err).Msg("weather fetch failed, serving mock report")
		return mockReport(time.Now()), nil
	}

	_ = s.cache.Set(ctx, key, report, s.cacheTTL)
	return report, nil
}

func mockReport(now time.Time) domain.WeatherReport {
	forecast := make([]domain.WeatherForecast, 3)
	for i := range forecast {
		day := now.AddDate(0, 0, i+1)
		forecast[i] = domain.WeatherForecast{
			Unix:        day.Unix(),
			Temp:        28,
			Description: "partly cloudy",
			Icon:        "02d",
			Date:        day.Format("2006-01-02"),
		}
	}
	return domain.WeatherReport{
		Current: domain.WeatherNow{
			Temp:        28,
			FeelsLike:   30,
			TempMin:     26,
			TempMax:     31,
			Pressure:    1013,
			Humidity:    65,
			Description: "partly cloudy",
			Icon:        "02d",
			WindSpeed:   3,
		},
		Forecast: forecast,
	}
}
