package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelassist/internal/domain"
)

func newBookingFixture(t *testing.T) (*BookingService, *fakeMailer, int64, int64, int64) {
	t.Helper()
	ctx := context.Background()
	users := newFakeUserRepo()
	places := newFakePlaceRepo()
	bookings := newFakeBookingRepo()
	mailer := &fakeMailer{}

	uid, err := users.CreateUser(ctx, domain.User{
		Email: "ana@example.com", HashedPassword: "x", IsActive: true, EmailVerified: true,
	})
	require.NoError(t, err)

	rest, err := places.UpsertPlace(ctx, domain.Place{
		Name: "Spicy Villa", Kind: domain.KindRestaurant,
		Lat: 28.7, Lon: 77.1, AvgCostForTwo: pfloat(600),
	})
	require.NoError(t, err)
	hosp, err := places.UpsertPlace(ctx, domain.Place{
		Name: "City Hospital", Kind: domain.KindHospital, Lat: 28.7, Lon: 77.1,
	})
	require.NoError(t, err)

	svc := NewBookingService(bookings, users, places, mailer)
	return svc, mailer, uid, rest.ID, hosp.ID
}

func TestBookingCreate(t *testing.T) {
	svc, mailer, uid, restID, _ := newBookingFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, uid, restID, domain.BookingRestaurant)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	require.Len(t, mailer.bookings, 1)
	assert.Equal(t, "Spicy Villa", mailer.bookings[0].PlaceName)
}

func TestBookingCreateValidation(t *testing.T) {
	svc, _, uid, restID, hospID := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, uid, restID, "DINNER")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Create(ctx, uid, restID, domain.BookingHotel)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	// Hospitals cannot be booked under either type.
	_, err = svc.Create(ctx, uid, hospID, domain.BookingHotel)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Create(ctx, 999, restID, domain.BookingRestaurant)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(ctx, uid, 999, domain.BookingRestaurant)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingCreateSurvivesEmailFailure(t *testing.T) {
	svc, mailer, uid, restID, _ := newBookingFixture(t)
	mailer.failNext = true

	b, err := svc.Create(context.Background(), uid, restID, domain.BookingRestaurant)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestBookingCancel(t *testing.T) {
	svc, _, uid, restID, _ := newBookingFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, uid, restID, domain.BookingRestaurant)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, uid, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, uid, b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBookingOwnership(t *testing.T) {
	svc, _, uid, restID, _ := newBookingFixture(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, uid, restID, domain.BookingRestaurant)
	require.NoError(t, err)

	_, err = svc.Get(ctx, uid+1, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Cancel(ctx, uid+1, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.Get(ctx, uid, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	list, err := svc.ListForUser(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
