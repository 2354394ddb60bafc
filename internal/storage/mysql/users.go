package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"travelassist/internal/domain"
)

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Email,
		u.HashedPassword,
		valStr(u.Name),
		valInt(u.Age),
		dietVal(u.Diet),
		valF64(u.DailyFoodBudget),
		valF64(u.HotelBudgetPerNight),
		valStr(u.AvatarURL),
		u.IsActive,
		u.EmailVerified,
		valStr(u.OTPCode),
		valTime(u.OTPExpiry),
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserCols+"WHERE id = ?", id))
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserCols+"WHERE email = ?", email))
}

func (r *Repo) GetUserByResetToken(ctx context.Context, token string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserCols+"WHERE reset_token = ?", token))
}

func (r *Repo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx, updateUserSQL,
		u.Email,
		u.HashedPassword,
		valStr(u.Name),
		valInt(u.Age),
		dietVal(u.Diet),
		valF64(u.DailyFoodBudget),
		valF64(u.HotelBudgetPerNight),
		valStr(u.AvatarURL),
		u.IsActive,
		u.EmailVerified,
		valStr(u.OTPCode),
		valTime(u.OTPExpiry),
		valStr(u.ResetToken),
		valTime(u.ResetTokenExpiry),
		u.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows also happens on a no-op update; confirm existence.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, u.ID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserCols+"ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) AddFavorite(ctx context.Context, userID, placeID int64) (domain.Favorite, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, place_id) VALUES (?, ?)`, userID, placeID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.Favorite{}, domain.ErrAlreadyExists
		}
		return domain.Favorite{}, err
	}
	id, _ := res.LastInsertId()
	return r.getFavorite(ctx, id)
}

func (r *Repo) getFavorite(ctx context.Context, id int64) (domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, place_id, created_at FROM favorites WHERE id = ?`, id).
		Scan(&f.ID, &f.UserID, &f.PlaceID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Favorite{}, domain.ErrNotFound
	}
	return f, err
}

func (r *Repo) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, place_id, created_at FROM favorites WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PlaceID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) RemoveFavorite(ctx context.Context, userID, placeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND place_id = ?`, userID, placeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) AddSearchEntry(ctx context.Context, e domain.SearchEntry) (domain.SearchEntry, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO search_history (user_id, query, location) VALUES (?, ?, ?)`,
		e.UserID, e.Query, valStr(e.Location))
	if err != nil {
		return domain.SearchEntry{}, err
	}
	id, _ := res.LastInsertId()
	var out domain.SearchEntry
	var loc sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, query, location, created_at FROM search_history WHERE id = ?`, id).
		Scan(&out.ID, &out.UserID, &out.Query, &loc, &out.CreatedAt)
	out.Location = strPtr(loc)
	return out, err
}

func (r *Repo) ListSearchEntries(ctx context.Context, userID int64, limit int) ([]domain.SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, query, location, created_at FROM search_history
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SearchEntry
	for rows.Next() {
		var e domain.SearchEntry
		var loc sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Query, &loc, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Location = strPtr(loc)
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func (r *Repo) scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var name, diet, avatar, otp, reset sql.NullString
	var age sql.NullInt64
	var food, hotel sql.NullFloat64
	var otpExp, resetExp sql.NullTime

	err := row.Scan(
		&u.ID, &u.Email, &u.HashedPassword,
		&name, &age, &diet, &food, &hotel, &avatar,
		&u.IsActive, &u.EmailVerified,
		&otp, &otpExp, &reset, &resetExp,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.Name = strPtr(name)
	u.Age = intPtr(age)
	if diet.Valid {
		d := domain.DietType(diet.String)
		u.Diet = &d
	}
	u.DailyFoodBudget = f64Ptr(food)
	u.HotelBudgetPerNight = f64Ptr(hotel)
	u.AvatarURL = strPtr(avatar)
	u.OTPCode = strPtr(otp)
	u.OTPExpiry = timePtr(otpExp)
	u.ResetToken = strPtr(reset)
	u.ResetTokenExpiry = timePtr(resetExp)
	return u, nil
}

func dietVal(d *domain.DietType) any {
	if d == nil {
		return nil
	}
	return string(*d)
}
