package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelassist/internal/domain"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *fakeGateway, *fakeBookingRepo, int64, int64) {
	t.Helper()
	ctx := context.Background()
	users := newFakeUserRepo()
	places := newFakePlaceRepo()
	bookings := newFakeBookingRepo()
	txs := newFakeTxRepo()
	gateway := &fakeGateway{validSig: "good-sig", validHook: "good-hook"}

	uid, err := users.CreateUser(ctx, domain.User{
		Email: "ana@example.com", HashedPassword: "x", IsActive: true, EmailVerified: true,
	})
	require.NoError(t, err)
	p, err := places.UpsertPlace(ctx, domain.Place{
		Name: "Grand Palace", Kind: domain.KindHotel,
		Lat: 28.7, Lon: 77.1, PricePerNight: pfloat(5000),
	})
	require.NoError(t, err)
	b, err := bookings.CreateBooking(ctx, domain.Booking{
		UserID: uid, PlaceID: p.ID, Type: domain.BookingHotel, Status: domain.BookingConfirmed,
	})
	require.NoError(t, err)

	svc := NewPaymentService(txs, bookings, places, gateway)
	return svc, gateway, bookings, uid, b.ID
}

func TestCreateOrderForBooking(t *testing.T) {
	svc, gateway, _, uid, bid := newPaymentFixture(t)
	ctx := context.Background()

	res, err := svc.CreateOrder(ctx, uid, bid)
	require.NoError(t, err)
	assert.Equal(t, "order_fake_1", res.Transaction.OrderID)
	assert.Equal(t, domain.PaymentCreated, res.Transaction.Status)
	assert.Equal(t, 5000.0, res.Transaction.Amount)
	assert.Equal(t, "key_fake", res.KeyID)
	assert.Equal(t, 1, gateway.orders)

	// One transaction per booking.
	_, err = svc.CreateOrder(ctx, uid, bid)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreateOrderOwnership(t *testing.T) {
	svc, _, _, uid, bid := newPaymentFixture(t)

	_, err := svc.CreateOrder(context.Background(), uid+1, bid)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerifyPaymentCaptures(t *testing.T) {
	svc, _, bookings, uid, bid := newPaymentFixture(t)
	ctx := context.Background()

	res, err := svc.CreateOrder(ctx, uid, bid)
	require.NoError(t, err)

	tx, err := svc.Verify(ctx, uid, res.Transaction.OrderID, "pay_1", "good-sig")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCaptured, tx.Status)
	require.NotNil(t, tx.PaymentID)
	assert.Equal(t, "pay_1", *tx.PaymentID)

	b, err := bookings.GetBooking(ctx, bid)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	svc, _, _, uid, bid := newPaymentFixture(t)
	ctx := context.Background()

	res, err := svc.CreateOrder(ctx, uid, bid)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, uid, res.Transaction.OrderID, "pay_1", "tampered")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	tx, err := svc.GetByBooking(ctx, uid, bid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, tx.Status)
}

func TestWebhook(t *testing.T) {
	svc, _, _, uid, bid := newPaymentFixture(t)
	ctx := context.Background()

	res, err := svc.CreateOrder(ctx, uid, bid)
	require.NoError(t, err)
	orderID := res.Transaction.OrderID
	payload := []byte(`{"event":"payment.captured"}`)

	err = svc.HandleWebhook(ctx, payload, "bad-hook", "payment.captured", orderID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.HandleWebhook(ctx, payload, "good-hook", "payment.captured", orderID))
	tx, err := svc.GetByBooking(ctx, uid, bid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCaptured, tx.Status)

	// Unknown events are acknowledged without a state change.
	require.NoError(t, svc.HandleWebhook(ctx, payload, "good-hook", "order.paid", orderID))
	tx, err = svc.GetByBooking(ctx, uid, bid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCaptured, tx.Status)

	require.NoError(t, svc.HandleWebhook(ctx, payload, "good-hook", "refund.processed", orderID))
	tx, err = svc.GetByBooking(ctx, uid, bid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, tx.Status)
}
