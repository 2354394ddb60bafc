package httpserver

import (
	"fmt"
	"net/http"
	"time"
)

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathID(r, "placeID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	var body struct {
		Rating  float64 `json:"rating"`
		Comment *string `json:"comment"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	rv, err := h.Reviews.Create(r.Context(), userID(r), placeID, body.Rating, body.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) listPlaceReviews(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathID(r, "placeID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	reviews, err := h.Reviews.ListForPlace(r.Context(), placeID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": reviews})
}

func (h *Handlers) listMyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListForUser(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": reviews})
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathID(r, "reviewID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	var body struct {
		Rating  float64 `json:"rating"`
		Comment *string `json:"comment"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	rv, err := h.Reviews.Update(r.Context(), userID(r), reviewID, body.Rating, body.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathID(r, "reviewID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := h.Reviews.Delete(r.Context(), userID(r), reviewID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) markHelpful(w http.ResponseWriter, r *http.Request) {
	reviewID, err := pathID(r, "reviewID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	count, err := h.Reviews.MarkHelpful(r.Context(), reviewID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"helpful_count": count})
}

func (h *Handlers) exportUsers(w http.ResponseWriter, r *http.Request) {
	setCSVHeaders(w, "users")
	if err := h.Export.Users(r.Context(), w); err != nil {
		respondError(w, err)
	}
}

func (h *Handlers) exportBookings(w http.ResponseWriter, r *http.Request) {
	setCSVHeaders(w, "bookings")
	if err := h.Export.Bookings(r.Context(), w); err != nil {
		respondError(w, err)
	}
}

func setCSVHeaders(w http.ResponseWriter, name string) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
