package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelassist/internal/domain"
)

func TestExportUsers(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	_, err := users.CreateUser(ctx, domain.User{
		Email: "ana@example.com", HashedPassword: "x",
		Name: pstr("Ana"), Diet: pdiet(domain.DietVeg),
		DailyFoodBudget: pfloat(400), EmailVerified: true, IsActive: true,
	})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, domain.User{Email: "bob@example.com", HashedPassword: "x", IsActive: true})
	require.NoError(t, err)

	svc := NewExportService(users, newFakeBookingRepo(), newFakePlaceRepo())
	var buf bytes.Buffer
	require.NoError(t, svc.Users(ctx, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "email", rows[0][1])
	assert.Equal(t, "ana@example.com", rows[1][1])
	assert.Equal(t, "VEG", rows[1][4])
	assert.Equal(t, "", rows[2][2]) // no name set
}

func TestExportBookings(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	places := newFakePlaceRepo()
	bookings := newFakeBookingRepo()

	uid, err := users.CreateUser(ctx, domain.User{Email: "ana@example.com", HashedPassword: "x", IsActive: true})
	require.NoError(t, err)
	p, err := places.UpsertPlace(ctx, domain.Place{Name: "Grand Palace", Kind: domain.KindHotel, Lat: 1, Lon: 1})
	require.NoError(t, err)
	_, err = bookings.CreateBooking(ctx, domain.Booking{
		UserID: uid, PlaceID: p.ID, Type: domain.BookingHotel, Status: domain.BookingConfirmed,
	})
	require.NoError(t, err)

	svc := NewExportService(users, bookings, places)
	var buf bytes.Buffer
	require.NoError(t, svc.Bookings(ctx, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ana@example.com", rows[1][1])
	assert.Equal(t, "Grand Palace", rows[1][2])
	assert.Equal(t, "HOTEL", rows[1][3])
}
