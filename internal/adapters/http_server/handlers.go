package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelassist/internal/app"
	"travelassist/internal/auth"
	"travelassist/internal/domain"
)

type Handlers struct {
	Auth     *app.AuthService
	Users    *app.UserService
	Recs     *app.RecommendationService
	Bookings *app.BookingService
	Payments *app.PaymentService
	Reviews  *app.ReviewService
	Weather  *app.WeatherService
	Export   *app.ExportService
	Tokens   *auth.TokenService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/verify", h.verifyEmail)
		r.Post("/auth/resend-otp", h.resendOTP)
		r.Post("/auth/login", h.login)
		r.Post("/auth/forgot-password", h.forgotPassword)
		r.Post("/auth/reset-password", h.resetPassword)

		r.Get("/nearby/hospitals", h.nearbyHospitals)
		r.Get("/weather", h.weather)
		r.Get("/places/{placeID}/reviews", h.listPlaceReviews)
		r.Post("/webhooks/razorpay", h.razorpayWebhook)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(h.Tokens))

			r.Get("/users/me", h.me)
			r.Patch("/users/me", h.updateProfile)
			r.Get("/users/me/favorites", h.listFavorites)
			r.Post("/users/me/favorites", h.addFavorite)
			r.Delete("/users/me/favorites/{placeID}", h.removeFavorite)
			r.Get("/users/me/searches", h.listSearches)
			r.Post("/users/me/searches", h.addSearch)

			r.Get("/recommend/restaurants", h.recommendRestaurants)
			r.Get("/recommend/hotels", h.recommendHotels)
			r.Get("/geocode", h.geocode)

			r.Post("/bookings", h.createBooking)
			r.Get("/bookings", h.listBookings)
			r.Get("/bookings/{bookingID}", h.getBooking)
			r.Post("/bookings/{bookingID}/cancel", h.cancelBooking)
			r.Get("/bookings/{bookingID}/payment", h.getPayment)

			r.Post("/payments/order", h.createOrder)
			r.Post("/payments/verify", h.verifyPayment)

			r.Post("/places/{placeID}/reviews", h.createReview)
			r.Get("/users/me/reviews", h.listMyReviews)
			r.Patch("/reviews/{reviewID}", h.updateReview)
			r.Delete("/reviews/{reviewID}", h.deleteReview)
			r.Post("/reviews/{reviewID}/helpful", h.markHelpful)

			r.Get("/export/users.csv", h.exportUsers)
			r.Get("/export/bookings.csv", h.exportBookings)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// respondError maps domain sentinels to HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrInvalid):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return id, nil
}

// parseCoords reads lat/lon query parameters.
func parseCoords(r *http.Request) (domain.Coords, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return domain.Coords{}, errors.New("lat must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return domain.Coords{}, errors.New("lon must be a number between -180 and 180")
	}
	return domain.Coords{Lat: lat, Lon: lon}, nil
}

func parseRadius(r *http.Request, def float64) (float64, error) {
	s := r.URL.Query().Get("radius_km")
	if s == "" {
		return def, nil
	}
	radius, err := strconv.ParseFloat(s, 64)
	if err != nil || radius <= 0 || radius > 100 {
		return 0, errors.New("radius_km must be a number between 0 and 100")
	}
	return radius, nil
}
