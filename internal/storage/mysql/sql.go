package mysql

const insertUserSQL = `
INSERT INTO users
  (email, hashed_password, name, age, diet, daily_food_budget, hotel_budget_per_night,
   avatar_url, is_active, email_verified, otp_code, otp_expiry)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateUserSQL = `
UPDATE users SET
  email                  = ?,
  hashed_password        = ?,
  name                   = ?,
  age                    = ?,
  diet                   = ?,
  daily_food_budget      = ?,
  hotel_budget_per_night = ?,
  avatar_url             = ?,
  is_active              = ?,
  email_verified         = ?,
  otp_code               = ?,
  otp_expiry             = ?,
  reset_token            = ?,
  reset_token_expiry     = ?
WHERE id = ?
`

const selectUserCols = `
SELECT id, email, hashed_password, name, age, diet, daily_food_budget,
       hotel_budget_per_night, avatar_url, is_active, email_verified,
       otp_code, otp_expiry, reset_token, reset_token_expiry, created_at
FROM users
`

// Upsert keyed on google_place_id; seed rows without one insert plainly.
const upsertPlaceSQL = `
INSERT INTO places
  (google_place_id, name, kind, lat, lon, rating, avg_cost_for_two,
   price_per_night, tags, city, state, address)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name             = VALUES(name),
  lat              = VALUES(lat),
  lon              = VALUES(lon),
  rating           = COALESCE(VALUES(rating), places.rating),
  avg_cost_for_two = COALESCE(VALUES(avg_cost_for_two), places.avg_cost_for_two),
  price_per_night  = COALESCE(VALUES(price_per_night), places.price_per_night),
  tags             = VALUES(tags),
  city             = COALESCE(VALUES(city), places.city),
  state            = COALESCE(VALUES(state), places.state),
  address          = COALESCE(VALUES(address), places.address),
  updated_at       = CURRENT_TIMESTAMP,
  id               = LAST_INSERT_ID(id)
`

const selectPlaceCols = `
SELECT id, google_place_id, name, kind, lat, lon, rating, avg_cost_for_two,
       price_per_night, tags, city, state, address
FROM places
`

const insertMenuItemSQL = `
INSERT INTO menu_items (place_id, name, description, tags)
VALUES (?, ?, ?, ?)
`

const insertBookingSQL = `
INSERT INTO bookings (user_id, place_id, type, status)
VALUES (?, ?, ?, ?)
`

const selectBookingCols = `
SELECT id, user_id, place_id, type, status, created_at
FROM bookings
`

const insertTransactionSQL = `
INSERT INTO transactions (booking_id, order_id, payment_id, signature, amount, currency, status)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const updateTransactionSQL = `
UPDATE transactions SET
  payment_id = ?,
  signature  = ?,
  status     = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const selectTransactionCols = `
SELECT id, booking_id, order_id, payment_id, signature, amount, currency,
       status, created_at, updated_at
FROM transactions
`

const insertReviewSQL = `
INSERT INTO reviews (user_id, place_id, rating, comment)
VALUES (?, ?, ?, ?)
`

const selectReviewCols = `
SELECT id, user_id, place_id, rating, comment, helpful_count, created_at
FROM reviews
`
