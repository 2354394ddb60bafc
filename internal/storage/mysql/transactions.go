package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"travelassist/internal/domain"
)

func (r *Repo) CreateTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	res, err := r.db.ExecContext(ctx, insertTransactionSQL,
		t.BookingID, t.OrderID, valStr(t.PaymentID), valStr(t.Signature),
		t.Amount, t.Currency, string(t.Status))
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.Transaction{}, domain.ErrAlreadyExists
		}
		return domain.Transaction{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Transaction{}, err
	}
	return r.getTransaction(ctx, selectTransactionCols+"WHERE id = ?", id)
}

func (r *Repo) GetTransactionByBooking(ctx context.Context, bookingID int64) (domain.Transaction, error) {
	return r.getTransaction(ctx, selectTransactionCols+"WHERE booking_id = ?", bookingID)
}

func (r *Repo) GetTransactionByOrder(ctx context.Context, orderID string) (domain.Transaction, error) {
	return r.getTransaction(ctx, selectTransactionCols+"WHERE order_id = ?", orderID)
}

func (r *Repo) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	res, err := r.db.ExecContext(ctx, updateTransactionSQL,
		valStr(t.PaymentID), valStr(t.Signature), string(t.Status), t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM transactions WHERE id = ?`, t.ID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (r *Repo) getTransaction(ctx context.Context, query string, arg any) (domain.Transaction, error) {
	var t domain.Transaction
	var payID, sig sql.NullString
	var status string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&t.ID, &t.BookingID, &t.OrderID, &payID, &sig,
		&t.Amount, &t.Currency, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrNotFound
		}
		return domain.Transaction{}, err
	}
	t.PaymentID = strPtr(payID)
	t.Signature = strPtr(sig)
	t.Status = domain.PaymentStatus(status)
	return t, nil
}
