package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travelassist/internal/adapters/observability"
	"travelassist/internal/domain"
)

// Client fetches current conditions and a short forecast from
// OpenWeatherMap. Failures surface as errors; the weather service layers
// a mock payload on top for development and degraded upstreams.
type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string) *Client {
	return &Client{
		base: strings.TrimSuffix(base, "/"),
		key:  key,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(5), 5),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.key != "" }

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
}

func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherReport, error) {
	var cur currentResponse
	if err := c.get(ctx, "/weather", lat, lon, "", &cur); err != nil {
		return domain.WeatherReport{}, err
	}

	report := domain.WeatherReport{
		Current: domain.WeatherNow{
			Temp:      cur.Main.Temp,
			FeelsLike: cur.Main.FeelsLike,
			TempMin:   cur.Main.TempMin,
			TempMax:   cur.Main.TempMax,
			Pressure:  cur.Main.Pressure,
			Humidity:  cur.Main.Humidity,
			WindSpeed: cur.Wind.Speed,
		},
	}
	if len(cur.Weather) > 0 {
		report.Current.Description = cur.Weather[0].Description
		report.Current.Icon = cur.Weather[0].Icon
	}

	// Forecast is best effort: current conditions alone are still useful.
	var fc forecastResponse
	if err := c.get(ctx, "/forecast", lat, lon, "&cnt=24", &fc); err == nil {
		// every 8th of the 3-hourly points, one per day
		for i := 0; i < len(fc.List) && i < 24; i += 8 {
			item := fc.List[i]
			f := domain.WeatherForecast{
				Unix: item.Dt,
				Temp: item.Main.Temp,
				Date: item.DtTxt,
			}
			if len(item.Weather) > 0 {
				f.Description = item.Weather[0].Description
				f.Icon = item.Weather[0].Icon
			}
			report.Forecast = append(report.Forecast, f)
		}
	}

	return report, nil
}

func (c *Client) get(ctx context.Context, endpoint string, lat, lon float64, extra string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	u := fmt.Sprintf("%s%s?lat=%f&lon=%f&appid=%s&units=metric%s",
		c.base, endpoint, lat, lon, url.QueryEscape(c.key), extra)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("openweather", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("openweather %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
