package reviewrepo

import (
	"context"
	"database/sql"

	"campusrent/model"
)

type Repo interface {
	RentalStatus(ctx context.Context, rentalID int64) (model.RentalStatus, error)
	Exists(ctx context.Context, rentalID, reviewerID int64) (bool, error)

	Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error
	RatingForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (rating float64, count int64, err error)
	UpdateRating(ctx context.Context, tx *sql.Tx, userID int64, rating float64, count int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) RentalStatus(ctx context.Context, rentalID int64) (model.RentalStatus, error) {
	var status model.RentalStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM rentals WHERE id = $1`, rentalID).Scan(&status)
	return status, err
}

func (r *repo) Exists(ctx context.Context, rentalID, reviewerID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM reviews WHERE rental_id = $1 AND reviewer_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, rentalID, reviewerID).Scan(&exists)
	return exists, err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	const q = `
		INSERT INTO reviews (rental_id, reviewer_id, reviewee_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q, rv.RentalID, rv.ReviewerID, rv.RevieweeID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
}

func (r *repo) RatingForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, int64, error) {
	const q = `SELECT rating, total_ratings FROM users WHERE id = $1 FOR UPDATE`
	var rating float64
	var count int64
	err := tx.QueryRowContext(ctx, q, userID).Scan(&rating, &count)
	return rating, count, err
}

func (r *repo) UpdateRating(ctx context.Context, tx *sql.Tx, userID int64, rating float64, count int64) error {
	const q = `UPDATE users SET rating = $2, total_ratings = $3 WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, userID, rating, count)
	return err
}
