package httpserver

import "net/http"

const (
	defaultRestaurantRadiusKm = 5
	defaultHotelRadiusKm      = 10
	defaultHospitalRadiusKm   = 10
)

func (h *Handlers) recommendRestaurants(w http.ResponseWriter, r *http.Request) {
	origin, err := parseCoords(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	radius, err := parseRadius(r, defaultRestaurantRadiusKm)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	out, err := h.Recs.Restaurants(r.Context(), userID(r), origin, radius)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handlers) recommendHotels(w http.ResponseWriter, r *http.Request) {
	origin, err := parseCoords(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	radius, err := parseRadius(r, defaultHotelRadiusKm)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	out, err := h.Recs.Hotels(r.Context(), userID(r), origin, radius)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handlers) nearbyHospitals(w http.ResponseWriter, r *http.Request) {
	origin, err := parseCoords(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	radius, err := parseRadius(r, defaultHospitalRadiusKm)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	out, err := h.Recs.Hospitals(r.Context(), origin, radius)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handlers) geocode(w http.ResponseWriter, r *http.Request) {
	coords, err := h.Recs.Geocode(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"lat": coords.Lat, "lon": coords.Lon})
}

func (h *Handlers) weather(w http.ResponseWriter, r *http.Request) {
	origin, err := parseCoords(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	report, err := h.Weather.Report(r.Context(), origin.Lat, origin.Lon)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
