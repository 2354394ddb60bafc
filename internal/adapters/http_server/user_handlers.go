package httpserver

import (
	"net/http"

	"travelassist/internal/app"
	"travelassist/internal/domain"
)

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.GetUser(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name                *string          `json:"name"`
		Age                 *int             `json:"age"`
		Diet                *domain.DietType `json:"diet"`
		DailyFoodBudget     *float64         `json:"daily_food_budget"`
		HotelBudgetPerNight *float64         `json:"hotel_budget_per_night"`
		AvatarURL           *string          `json:"avatar_url"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), userID(r), app.ProfileUpdate{
		Name:                body.Name,
		Age:                 body.Age,
		Diet:                body.Diet,
		DailyFoodBudget:     body.DailyFoodBudget,
		HotelBudgetPerNight: body.HotelBudgetPerNight,
		AvatarURL:           body.AvatarURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlaceID int64 `json:"place_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	f, err := h.Users.AddFavorite(r.Context(), userID(r), body.PlaceID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Users.ListFavorites(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": favs})
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathID(r, "placeID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := h.Users.RemoveFavorite(r.Context(), userID(r), placeID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) addSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query    string  `json:"query"`
		Location *string `json:"location"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	e, err := h.Users.AddSearchEntry(r.Context(), userID(r), body.Query, body.Location)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handlers) listSearches(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Users.ListSearchEntries(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}
