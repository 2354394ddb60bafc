package places

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travelassist/internal/adapters/observability"
	"travelassist/internal/domain"
)

// Client talks to the Google Places API (New) plus the classic geocoding
// endpoint. All calls are client-side rate limited and retried on 429
// and transient 5xx.
type Client struct {
	base    string
	geoBase string
	hc      *http.Client
	key     string
	rl      *rate.Limiter
}

var (
	ErrNotFound     = fmt.Errorf("places: %w", domain.ErrNotFound)
	ErrUnauthorized = fmt.Errorf("places: %w", domain.ErrUnauthorized)
	ErrForbidden    = fmt.Errorf("places: %w", domain.ErrForbidden)
)

const fieldMask = "places.displayName,places.formattedAddress,places.addressComponents," +
	"places.location,places.rating,places.priceLevel,places.types,places.id"

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    strings.TrimSuffix(base, "/"),
		geoBase: "https://maps.googleapis.com/maps/api/geocode/json",
		hc:      &http.Client{Timeout: 20 * time.Second},
		key:     key,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// WithGeocodeBase overrides the geocoding endpoint (tests).
func (c *Client) WithGeocodeBase(u string) *Client {
	c.geoBase = u
	return c
}

// ---- wire shapes (New Places API) ----

type searchBody struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type searchResponse struct {
	Places []wirePlace `json:"places"`
}

type wirePlace struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress  string   `json:"formattedAddress"`
	Types             []string `json:"types"`
	Rating            *float64 `json:"rating"`
	PriceLevel        string   `json:"priceLevel"`
	Location          struct{ Latitude, Longitude float64 } `json:"location"`
	AddressComponents []struct {
		LongText  string   `json:"longText"`
		ShortText string   `json:"shortText"`
		Types     []string `json:"types"`
	} `json:"addressComponents"`
}

var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

func (c *Client) SearchNearby(ctx context.Context, lat, lon, radiusKm float64, placeType string) ([]domain.NearbyPlace, error) {
	var body searchBody
	body.IncludedTypes = []string{placeType}
	body.MaxResultCount = 20
	body.LocationRestriction.Circle.Center.Latitude = lat
	body.LocationRestriction.Circle.Center.Longitude = lon
	body.LocationRestriction.Circle.Radius = radiusKm * 1000 // meters

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, c.base+"/places:searchNearby", "searchNearby", body, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.NearbyPlace, 0, len(resp.Places))
	for _, wp := range resp.Places {
		out = append(out, mapWirePlace(wp))
	}
	return out, nil
}

func mapWirePlace(wp wirePlace) domain.NearbyPlace {
	var tags []string
	for _, t := range wp.Types {
		if t == "point_of_interest" || t == "establishment" {
			continue
		}
		tags = append(tags, strings.ReplaceAll(t, "_", " "))
	}

	level, ok := priceLevels[wp.PriceLevel]
	if !ok {
		level = priceLevels["PRICE_LEVEL_MODERATE"]
	}

	np := domain.NearbyPlace{
		GooglePlaceID: wp.ID,
		Name:          wp.DisplayName.Text,
		Lat:           wp.Location.Latitude,
		Lon:           wp.Location.Longitude,
		Rating:        wp.Rating,
		PriceLevel:    level,
		Tags:          tags,
	}
	if np.Name == "" {
		np.Name = "Unknown"
	}
	if wp.FormattedAddress != "" {
		addr := wp.FormattedAddress
		np.Address = &addr
	}
	for _, comp := range wp.AddressComponents {
		text := comp.LongText
		if text == "" {
			text = comp.ShortText
		}
		for _, t := range comp.Types {
			switch t {
			case "locality":
				v := text
				np.City = &v
			case "administrative_area_level_2":
				if np.City == nil {
					v := text
					np.City = &v
				}
			case "administrative_area_level_1":
				v := text
				np.State = &v
			}
		}
	}
	return np
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

func (c *Client) Geocode(ctx context.Context, address string) (domain.Coords, error) {
	u := c.geoBase + "?address=" + url.QueryEscape(address) + "&key=" + url.QueryEscape(c.key)
	var resp geocodeResponse
	if err := c.do(ctx, http.MethodGet, u, "geocode", nil, &resp); err != nil {
		return domain.Coords{}, err
	}
	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return domain.Coords{}, ErrNotFound
	}
	loc := resp.Results[0].Geometry.Location
	return domain.Coords{Lat: loc.Lat, Lon: loc.Lng}, nil
}

// ---- transport internals ----

// do performs one JSON request with rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided.
func (c *Client) do(ctx context.Context, method, url, endpoint string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return err
		}
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Goog-Api-Key", c.key)
			req.Header.Set("X-Goog-FieldMask", fieldMask)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up
// to +50% jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
