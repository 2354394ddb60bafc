package app

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"travelassist/internal/domain"
)

func pstr(s string) *string                    { return &s }
func pfloat(f float64) *float64                { return &f }
func pdiet(d domain.DietType) *domain.DietType { return &d }

// ---- user repo ----

type fakeUserRepo struct {
	users  map[int64]domain.User
	favs   map[int64]domain.Favorite
	search []domain.SearchEntry
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}, favs: map[int64]domain.Favorite{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u domain.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return 0, domain.ErrAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id int64) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *fakeUserRepo) GetUserByResetToken(_ context.Context, token string) (domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) AddFavorite(_ context.Context, userID, placeID int64) (domain.Favorite, error) {
	for _, f := range r.favs {
		if f.UserID == userID && f.PlaceID == placeID {
			return domain.Favorite{}, domain.ErrAlreadyExists
		}
	}
	r.nextID++
	f := domain.Favorite{ID: r.nextID, UserID: userID, PlaceID: placeID, CreatedAt: time.Now()}
	r.favs[f.ID] = f
	return f, nil
}

func (r *fakeUserRepo) ListFavorites(_ context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, f := range r.favs {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) RemoveFavorite(_ context.Context, userID, placeID int64) error {
	for id, f := range r.favs {
		if f.UserID == userID && f.PlaceID == placeID {
			delete(r.favs, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeUserRepo) AddSearchEntry(_ context.Context, e domain.SearchEntry) (domain.SearchEntry, error) {
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	r.search = append(r.search, e)
	return e, nil
}

func (r *fakeUserRepo) ListSearchEntries(_ context.Context, userID int64, limit int) ([]domain.SearchEntry, error) {
	var out []domain.SearchEntry
	for i := len(r.search) - 1; i >= 0 && len(out) < limit; i-- {
		if r.search[i].UserID == userID {
			out = append(out, r.search[i])
		}
	}
	return out, nil
}

// ---- place repo ----

type fakePlaceRepo struct {
	places  map[int64]domain.Place
	menus   map[int64][]domain.MenuItem
	nextID  int64
	listErr error
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[int64]domain.Place{}, menus: map[int64][]domain.MenuItem{}}
}

func (r *fakePlaceRepo) UpsertPlace(_ context.Context, p domain.Place) (domain.Place, error) {
	if p.GooglePlaceID != nil {
		for id, existing := range r.places {
			if existing.GooglePlaceID != nil && *existing.GooglePlaceID == *p.GooglePlaceID {
				p.ID = id
				r.places[id] = p
				return p, nil
			}
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.places[p.ID] = p
	return p, nil
}

func (r *fakePlaceRepo) GetPlace(_ context.Context, id int64) (domain.Place, error) {
	p, ok := r.places[id]
	if !ok {
		return domain.Place{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePlaceRepo) ListPlacesByKind(_ context.Context, kind domain.PlaceKind) ([]domain.Place, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Place
	for _, p := range r.places {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlaceRepo) InsertMenuItem(_ context.Context, m domain.MenuItem) (int64, error) {
	r.nextID++
	m.ID = r.nextID
	r.menus[m.PlaceID] = append(r.menus[m.PlaceID], m)
	return m.ID, nil
}

func (r *fakePlaceRepo) ListMenuItems(_ context.Context, placeIDs []int64) (map[int64][]domain.MenuItem, error) {
	out := map[int64][]domain.MenuItem{}
	for _, id := range placeIDs {
		if items, ok := r.menus[id]; ok {
			out[id] = items
		}
	}
	return out, nil
}

func (r *fakePlaceRepo) UpdatePlaceRating(_ context.Context, placeID int64, rating float64) error {
	p, ok := r.places[placeID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Rating = &rating
	r.places[placeID] = p
	return nil
}

func (r *fakePlaceRepo) CountPlaces(_ context.Context) (int64, error) {
	return int64(len(r.places)), nil
}

// ---- booking and transaction repos ----

type fakeBookingRepo struct {
	bookings map[int64]domain.Booking
	nextID   int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]domain.Booking{}}
}

func (r *fakeBookingRepo) CreateBooking(_ context.Context, b domain.Booking) (domain.Booking, error) {
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	r.bookings[b.ID] = b
	return b, nil
}

func (r *fakeBookingRepo) GetBooking(_ context.Context, id int64) (domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) ListUserBookings(_ context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeBookingRepo) ListBookings(_ context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBookingRepo) UpdateBookingStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

type fakeTxRepo struct {
	txs    map[int64]domain.Transaction
	nextID int64
}

func newFakeTxRepo() *fakeTxRepo { return &fakeTxRepo{txs: map[int64]domain.Transaction{}} }

func (r *fakeTxRepo) CreateTransaction(_ context.Context, t domain.Transaction) (domain.Transaction, error) {
	for _, existing := range r.txs {
		if existing.BookingID == t.BookingID {
			return domain.Transaction{}, domain.ErrAlreadyExists
		}
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.txs[t.ID] = t
	return t, nil
}

func (r *fakeTxRepo) GetTransactionByBooking(_ context.Context, bookingID int64) (domain.Transaction, error) {
	for _, t := range r.txs {
		if t.BookingID == bookingID {
			return t, nil
		}
	}
	return domain.Transaction{}, domain.ErrNotFound
}

func (r *fakeTxRepo) GetTransactionByOrder(_ context.Context, orderID string) (domain.Transaction, error) {
	for _, t := range r.txs {
		if t.OrderID == orderID {
			return t, nil
		}
	}
	return domain.Transaction{}, domain.ErrNotFound
}

func (r *fakeTxRepo) UpdateTransaction(_ context.Context, t domain.Transaction) error {
	if _, ok := r.txs[t.ID]; !ok {
		return domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	r.txs[t.ID] = t
	return nil
}

// ---- review repo ----

type fakeReviewRepo struct {
	reviews map[int64]domain.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[int64]domain.Review{}}
}

func (r *fakeReviewRepo) CreateReview(_ context.Context, rv domain.Review) (domain.Review, error) {
	for _, existing := range r.reviews {
		if existing.UserID == rv.UserID && existing.PlaceID == rv.PlaceID {
			return domain.Review{}, domain.ErrAlreadyExists
		}
	}
	r.nextID++
	rv.ID = r.nextID
	rv.CreatedAt = time.Now()
	r.reviews[rv.ID] = rv
	return rv, nil
}

func (r *fakeReviewRepo) GetReview(_ context.Context, id int64) (domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, nil
}

func (r *fakeReviewRepo) ListPlaceReviews(_ context.Context, placeID int64) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.PlaceID == placeID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) ListUserReviews(_ context.Context, userID int64) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) UpdateReview(_ context.Context, rv domain.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeReviewRepo) DeleteReview(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) IncrementHelpful(_ context.Context, id int64) (int, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	rv.HelpfulCount++
	r.reviews[id] = rv
	return rv.HelpfulCount, nil
}

func (r *fakeReviewRepo) AverageRating(_ context.Context, placeID int64) (float64, int, error) {
	var sum float64
	var count int
	for _, rv := range r.reviews {
		if rv.PlaceID == placeID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// ---- cache ----

type fakeCache struct{ data map[string][]byte }

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// ---- mailer, gateway, clients ----

type fakeMailer struct {
	otps     []string
	resets   []string
	bookings []domain.BookingEmail
	failNext bool
}

func (m *fakeMailer) SendBookingConfirmation(_ context.Context, _ string, b domain.BookingEmail) error {
	if m.failNext {
		m.failNext = false
		return context.DeadlineExceeded
	}
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *fakeMailer) SendOTP(_ context.Context, _, _, code string) error {
	m.otps = append(m.otps, code)
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, _, token string) error {
	m.resets = append(m.resets, token)
	return nil
}

type fakeGateway struct {
	orders    int
	validSig  string
	validHook string
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount float64, currency, receipt string) (domain.GatewayOrder, error) {
	g.orders++
	return domain.GatewayOrder{
		ID:       "order_fake_1",
		Amount:   int64(amount * 100),
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *fakeGateway) VerifyPayment(_, _, signature string) bool { return signature == g.validSig }
func (g *fakeGateway) VerifyWebhook(_ []byte, signature string) bool {
	return signature == g.validHook
}
func (g *fakeGateway) KeyID() string { return "key_fake" }

type fakePlacesClient struct {
	results []domain.NearbyPlace
	err     error
	calls   int
}

func (c *fakePlacesClient) SearchNearby(_ context.Context, _, _, _ float64, _ string) ([]domain.NearbyPlace, error) {
	c.calls++
	return c.results, c.err
}

func (c *fakePlacesClient) Geocode(_ context.Context, _ string) (domain.Coords, error) {
	return domain.Coords{Lat: 28.7041, Lon: 77.1025}, nil
}
