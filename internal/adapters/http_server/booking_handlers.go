package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"travelassist/internal/domain"
)

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlaceID int64              `json:"place_id"`
		Type    domain.BookingType `json:"type"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	b, err := h.Bookings.Create(r.Context(), userID(r), body.PlaceID, body.Type)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.ListForUser(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": bookings})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bookingID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	b, err := h.Bookings.Get(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bookingID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	b, err := h.Bookings.Cancel(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BookingID int64 `json:"booking_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	res, err := h.Payments.CreateOrder(r.Context(), userID(r), body.BookingID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	tx, err := h.Payments.Verify(r.Context(), userID(r), body.OrderID, body.PaymentID, body.Signature)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handlers) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bookingID")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	tx, err := h.Payments.GetByBooking(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// razorpayWebhook verifies the gateway signature over the raw body
// before the payload is parsed.
func (h *Handlers) razorpayWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "unreadable body")
		return
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}

	err = h.Payments.HandleWebhook(r.Context(),
		payload,
		r.Header.Get("X-Razorpay-Signature"),
		event.Event,
		event.Payload.Payment.Entity.OrderID,
	)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
