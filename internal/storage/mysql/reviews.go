package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"travelassist/internal/domain"
)

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.UserID, rv.PlaceID, rv.Rating, valStr(rv.Comment))
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.Review{}, domain.ErrAlreadyExists
		}
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	return r.GetReview(ctx, id)
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, selectReviewCols+"WHERE id = ?", id))
}

func (r *Repo) ListPlaceReviews(ctx context.Context, placeID int64) ([]domain.Review, error) {
	return r.listReviews(ctx, selectReviewCols+"WHERE place_id = ? ORDER BY created_at DESC, id DESC", placeID)
}

func (r *Repo) ListUserReviews(ctx context.Context, userID int64) ([]domain.Review, error) {
	return r.listReviews(ctx, selectReviewCols+"WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
}

func (r *Repo) listReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`,
		rv.Rating, valStr(rv.Comment), rv.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reviews WHERE id = ?`, rv.ID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) IncrementHelpful(ctx context.Context, id int64) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET helpful_count = helpful_count + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ErrNotFound
	}
	var count int
	err = r.db.QueryRowContext(ctx, `SELECT helpful_count FROM reviews WHERE id = ?`, id).Scan(&count)
	return count, err
}

func (r *Repo) AverageRating(ctx context.Context, placeID int64) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE place_id = ?`, placeID).
		Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	var comment sql.NullString
	err := row.Scan(&rv.ID, &rv.UserID, &rv.PlaceID, &rv.Rating, &comment, &rv.HelpfulCount, &rv.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	rv.Comment = strPtr(comment)
	return rv, nil
}
