package reviewsvc

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"campusrent/model"
	reviewrepo "campusrent/repository/review"
)

type ErrCode string

const (
	ErrRentalNotFound  ErrCode = "RENTAL_NOT_FOUND"
	ErrNotCompleted    ErrCode = "RENTAL_NOT_COMPLETED"
	ErrAlreadyReviewed ErrCode = "ALREADY_REVIEWED"
	ErrBadRating       ErrCode = "BAD_RATING"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo = reviewrepo.Repo

type Service interface {
	// Create inserts the review and folds the rating into the reviewee's
	// running average in a single transaction.
	Create(ctx context.Context, reviewerID int64, rv *model.Review) error
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

func (s *service) Create(ctx context.Context, reviewerID int64, rv *model.Review) (err error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return makeErr(ErrBadRating)
	}

	status, err := s.r.RentalStatus(ctx, rv.RentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrRentalNotFound)
		}
		return err
	}
	if status != model.RentalCompleted {
		return makeErr(ErrNotCompleted)
	}

	taken, err := s.r.Exists(ctx, rv.RentalID, reviewerID)
	if err != nil {
		return err
	}
	if taken {
		return makeErr(ErrAlreadyReviewed)
	}

	rv.ReviewerID = reviewerID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.r.Insert(ctx, tx, rv); err != nil {
		return err
	}

	// Row lock keeps two concurrent reviews from racing the counters.
	rating, count, err := s.r.RatingForUpdate(ctx, tx, rv.RevieweeID)
	if err != nil {
		return err
	}
	newRating := NextRating(rating, count, rv.Rating)
	if err = s.r.UpdateRating(ctx, tx, rv.RevieweeID, newRating, count+1); err != nil {
		return err
	}
	return tx.Commit()
}

// NextRating folds one incoming rating into a running average, rounded to one
// decimal.
func NextRating(current float64, count int64, incoming int) float64 {
	total := current*float64(count) + float64(incoming)
	return math.Round(total/float64(count+1)*10) / 10
}
