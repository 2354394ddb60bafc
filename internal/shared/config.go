package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	PlacesBase  string
	PlacesKey   string
	WeatherBase string
	WeatherKey  string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	JWTSecret string
	TokenTTL  time.Duration

	EmailDriver string // log|ses
	EmailFrom   string
	SESRegion   string

	SeedWorkers int
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),

		PlacesBase:  env("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1"),
		PlacesKey:   env("GOOGLE_API_KEY", ""),
		WeatherBase: env("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherKey:  env("OPENWEATHER_API_KEY", ""),

		RazorpayKeyID:         env("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     env("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: env("RAZORPAY_WEBHOOK_SECRET", ""),

		JWTSecret: env("JWT_SECRET", ""),
		TokenTTL:  time.Duration(atoi("TOKEN_TTL_MINUTES", 30)) * time.Minute,

		EmailDriver: env("EMAIL_DRIVER", "log"),
		EmailFrom:   env("EMAIL_FROM", "no-reply@travelassist.local"),
		SESRegion:   env("SES_REGION", "ap-south-1"),

		SeedWorkers: atoi("SEED_WORKERS", 8),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("GOOGLE_API_KEY is empty; place search falls back to stored data")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
