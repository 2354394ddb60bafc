package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"travelassist/internal/adapters/email"
	server "travelassist/internal/adapters/http_server"
	"travelassist/internal/adapters/observability"
	"travelassist/internal/adapters/places"
	"travelassist/internal/adapters/razorpay"
	redisad "travelassist/internal/adapters/redis"
	"travelassist/internal/adapters/weather"
	"travelassist/internal/app"
	"travelassist/internal/auth"
	"travelassist/internal/domain"
	"travelassist/internal/recommend"
	"travelassist/internal/shared"
	mysqlrepo "travelassist/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	placesClient, err := places.New(cfg.PlacesBase, cfg.PlacesKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("places client init failed")
	}
	weatherClient := weather.New(cfg.WeatherBase, cfg.WeatherKey)
	gateway := razorpay.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	mailer := newMailer(ctx, cfg)

	// services
	authSvc := app.NewAuthService(repo, mailer, tokens)
	userSvc := app.NewUserService(repo, repo)
	recSvc := app.NewRecommendationService(repo, repo, placesClient, cache, recommend.NewKeywordScorer(), cfg.CacheTTL)
	bookingSvc := app.NewBookingService(repo, repo, repo, mailer)
	paymentSvc := app.NewPaymentService(repo, repo, repo, gateway)
	reviewSvc := app.NewReviewService(repo, repo)
	weatherSvc := app.NewWeatherService(weatherClient, weatherClient.Configured(), cache, cfg.CacheTTL)
	exportSvc := app.NewExportService(repo, repo, repo)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:     authSvc,
		Users:    userSvc,
		Recs:     recSvc,
		Bookings: bookingSvc,
		Payments: paymentSvc,
		Reviews:  reviewSvc,
		Weather:  weatherSvc,
		Export:   exportSvc,
		Tokens:   tokens,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func newMailer(ctx context.Context, cfg shared.Config) domain.Mailer {
	if cfg.EmailDriver == "ses" {
		m, err := email.NewSESMailer(ctx, cfg.SESRegion, cfg.EmailFrom)
		if err != nil {
			log.Fatal().Err(err).Msg("ses mailer init failed")
		}
		return m
	}
	return email.NewLogMailer(log.Logger)
}
