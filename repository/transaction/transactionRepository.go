package txrepo

import (
	"context"
	"database/sql"

	"campusrent/model"
)

type Repo interface {
	// EarningTotals returns the lifetime and current-calendar-month sums of
	// earning transactions for a user.
	EarningTotals(ctx context.Context, userID int64) (total, monthly float64, err error)
	PendingEarnings(ctx context.Context, userID int64) (float64, error)
	ActiveRentalCount(ctx context.Context, userID int64) (int64, error)
	ItemCount(ctx context.Context, userID int64) (int64, error)
	RecentEarnings(ctx context.Context, userID int64, limit int) ([]model.Transaction, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) EarningTotals(ctx context.Context, userID int64) (float64, float64, error) {
	const q = `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(amount) FILTER (WHERE created_at >= date_trunc('month', now())), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'earning'`
	var total, monthly float64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&total, &monthly)
	return total, monthly, err
}

func (r *repo) PendingEarnings(ctx context.Context, userID int64) (float64, error) {
	const q = `
		SELECT COALESCE(SUM(owner_earnings), 0)
		FROM rentals
		WHERE owner_id = $1 AND status IN ('approved', 'active')`
	var sum float64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&sum)
	return sum, err
}

func (r *repo) ActiveRentalCount(ctx context.Context, userID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM rentals WHERE owner_id = $1 AND status = 'active'`
	var n int64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&n)
	return n, err
}

func (r *repo) ItemCount(ctx context.Context, userID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM items WHERE owner_id = $1`
	var n int64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&n)
	return n, err
}

func (r *repo) RecentEarnings(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	const q = `
		SELECT id, user_id, rental_id, amount, type, status, description, created_at
		FROM transactions
		WHERE user_id = $1 AND type = 'earning'
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.RentalID, &t.Amount, &t.Type, &t.Status, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
