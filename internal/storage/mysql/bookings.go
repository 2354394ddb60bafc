package mysql

import (
	"context"
	"database/sql"

	"travelassist/internal/domain"
)

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.UserID, b.PlaceID, string(b.Type), string(b.Status))
	if err != nil {
		return domain.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Booking{}, err
	}
	return r.GetBooking(ctx, id)
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, selectBookingCols+"WHERE id = ?", id))
}

func (r *Repo) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.listBookings(ctx, selectBookingCols+"WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
}

func (r *Repo) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return r.listBookings(ctx, selectBookingCols+"ORDER BY id")
}

func (r *Repo) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var typ, status string
	err := row.Scan(&b.ID, &b.UserID, &b.PlaceID, &typ, &status, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	b.Type = domain.BookingType(typ)
	b.Status = domain.BookingStatus(status)
	return b, nil
}
