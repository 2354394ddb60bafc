package httpserver

import (
	"net/http"

	"travelassist/internal/app"
	"travelassist/internal/domain"
)

type userResponse struct {
	ID                  int64            `json:"id"`
	Email               string           `json:"email"`
	Name                *string          `json:"name,omitempty"`
	Age                 *int             `json:"age,omitempty"`
	Diet                *domain.DietType `json:"diet,omitempty"`
	DailyFoodBudget     *float64         `json:"daily_food_budget,omitempty"`
	HotelBudgetPerNight *float64         `json:"hotel_budget_per_night,omitempty"`
	AvatarURL           *string          `json:"avatar_url,omitempty"`
	EmailVerified       bool             `json:"email_verified"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Age:                 u.Age,
		Diet:                u.Diet,
		DailyFoodBudget:     u.DailyFoodBudget,
		HotelBudgetPerNight: u.HotelBudgetPerNight,
		AvatarURL:           u.AvatarURL,
		EmailVerified:       u.EmailVerified,
	}
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string           `json:"email"`
		Password string           `json:"password"`
		Name     *string          `json:"name"`
		Age      *int             `json:"age"`
		Diet     *domain.DietType `json:"diet"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	u, err := h.Auth.Signup(r.Context(), app.SignupInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Age:      body.Age,
		Diet:     body.Diet,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handlers) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.Auth.VerifyEmail(r.Context(), body.Email, body.Code); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *Handlers) resendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.Auth.ResendOTP(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	token, u, err := h.Auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         toUserResponse(u),
	})
}

func (h *Handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.Auth.ForgotPassword(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}
	// Same answer whether or not the email exists.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.Auth.ResetPassword(r.Context(), body.Token, body.Password); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
