package weather_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelassist/internal/adapters/weather"
)

func currentPayload() map[string]any {
	return map[string]any{
		"main": map[string]any{
			"temp":       31.2,
			"feels_like": 34.8,
			"temp_min":   29.0,
			"temp_max":   33.5,
			"pressure":   1008,
			"humidity":   74,
		},
		"weather": []map[string]any{{"description": "haze", "icon": "50d"}},
		"wind":    map[string]any{"speed": 2.4},
	}
}

func forecastPayload(points int) map[string]any {
	list := make([]map[string]any, 0, points)
	for i := 0; i < points; i++ {
		list = append(list, map[string]any{
			"dt":      int64(1700000000 + i*10800),
			"main":    map[string]any{"temp": 25.0 + float64(i)},
			"weather": []map[string]any{{"description": "clear sky", "icon": "01d"}},
			"dt_txt":  "2023-11-15 12:00:00",
		})
	}
	return map[string]any{"list": list}
}

func TestFetch_CurrentAndForecast(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("missing appid")
		}
		if r.URL.Query().Get("units") != "metric" {
			t.Errorf("missing metric units")
		}
		switch r.URL.Path {
		case "/weather":
			_ = json.NewEncoder(w).Encode(currentPayload())
		case "/forecast":
			_ = json.NewEncoder(w).Encode(forecastPayload(16))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(404)
		}
	}))
	defer ts.Close()

	cl := weather.New(ts.URL, "test-key")
	if !cl.Configured() {
		t.Fatalf("expected configured client")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.Fetch(ctx, 28.6139, 77.2090)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Current.Temp != 31.2 || got.Current.Humidity != 74 {
		t.Fatalf("current not mapped: %+v", got.Current)
	}
	if got.Current.Description != "haze" || got.Current.Icon != "50d" {
		t.Fatalf("conditions not mapped: %+v", got.Current)
	}
	// one point per day from the 3-hourly list: indexes 0 and 8
	if len(got.Forecast) != 2 {
		t.Fatalf("expected 2 forecast days, got %d", len(got.Forecast))
	}
	if got.Forecast[1].Temp != 33.0 {
		t.Fatalf("expected second day temp 33.0, got %f", got.Forecast[1].Temp)
	}
}

func TestFetch_ForecastFailureIsBestEffort(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/weather" {
			_ = json.NewEncoder(w).Encode(currentPayload())
			return
		}
		w.WriteHeader(500)
	}))
	defer ts.Close()

	cl := weather.New(ts.URL, "test-key")
	got, err := cl.Fetch(context.Background(), 28.6139, 77.2090)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Current.Temp != 31.2 {
		t.Fatalf("current not mapped: %+v", got.Current)
	}
	if len(got.Forecast) != 0 {
		t.Fatalf("expected no forecast, got %d entries", len(got.Forecast))
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer ts.Close()

	cl := weather.New(ts.URL, "bad-key")
	if _, err := cl.Fetch(context.Background(), 28.6139, 77.2090); err == nil {
		t.Fatalf("expected error from 401 upstream")
	}
}

func TestConfigured_EmptyKey(t *testing.T) {
	if weather.New("https://api.openweathermap.org/data/2.5", "").Configured() {
		t.Fatalf("expected unconfigured client without api key")
	}
}
