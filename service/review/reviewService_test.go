package reviewsvc

import (
	"context"
	"database/sql"
	"testing"

	"campusrent/model"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	rentalStatusFn    func(ctx context.Context, rentalID int64) (model.RentalStatus, error)
	existsFn          func(ctx context.Context, rentalID, reviewerID int64) (bool, error)
	insertFn          func(ctx context.Context, tx *sql.Tx, rv *model.Review) error
	ratingForUpdateFn func(ctx context.Context, tx *sql.Tx, userID int64) (float64, int64, error)
	updateRatingFn    func(ctx context.Context, tx *sql.Tx, userID int64, rating float64, count int64) error
}

func (m *mockRepo) RentalStatus(ctx context.Context, rentalID int64) (model.RentalStatus, error) {
	return m.rentalStatusFn(ctx, rentalID)
}
func (m *mockRepo) Exists(ctx context.Context, rentalID, reviewerID int64) (bool, error) {
	return m.existsFn(ctx, rentalID, reviewerID)
}
func (m *mockRepo) Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	return m.insertFn(ctx, tx, rv)
}
func (m *mockRepo) RatingForUpdate(ctx context.Context, tx *sql.Tx, userID int64) (float64, int64, error) {
	return m.ratingForUpdateFn(ctx, tx, userID)
}
func (m *mockRepo) UpdateRating(ctx context.Context, tx *sql.Tx, userID int64, rating float64, count int64) error {
	return m.updateRatingFn(ctx, tx, userID, rating, count)
}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestNextRating(t *testing.T) {
	cases := []struct {
		current  float64
		count    int64
		incoming int
		want     float64
	}{
		{4.0, 10, 5, 4.1},
		{5.0, 0, 3, 3.0}, // baseline 5.0 with no ratings is replaced outright
		{5.0, 1, 4, 4.5},
		{3.7, 3, 2, 3.3},
	}
	for _, c := range cases {
		got := NextRating(c.current, c.count, c.incoming)
		require.Equal(t, c.want, got, "NextRating(%v, %v, %v)", c.current, c.count, c.incoming)
	}
}

func TestCreate_Success(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var gotRating float64
	var gotCount int64
	m := &mockRepo{
		rentalStatusFn: func(ctx context.Context, rentalID int64) (model.RentalStatus, error) {
			return model.RentalCompleted, nil
		},
		existsFn: func(ctx context.Context, rentalID, reviewerID int64) (bool, error) {
			return false, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
			rv.ID = 11
			return nil
		},
		ratingForUpdateFn: func(ctx context.Context, tx *sql.Tx, userID int64) (float64, int64, error) {
			return 4.0, 10, nil
		},
		updateRatingFn: func(ctx context.Context, tx *sql.Tx, userID int64, rating float64, count int64) error {
			gotRating, gotCount = rating, count
			return nil
		},
	}
	svc := New(db, m)

	rv := &model.Review{RentalID: 5, RevieweeID: 2, Rating: 5, Comment: strPtr("great kayak")}
	require.NoError(t, svc.Create(context.Background(), 1, rv))
	require.Equal(t, int64(1), rv.ReviewerID)
	require.Equal(t, int64(11), rv.ID)
	require.Equal(t, 4.1, gotRating)
	require.Equal(t, int64(11), gotCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_BadRating(t *testing.T) {
	db, _ := newDB(t)
	svc := New(db, &mockRepo{})

	for _, rating := range []int{0, 6, -1} {
		err := svc.Create(context.Background(), 1, &model.Review{RentalID: 5, Rating: rating})
		require.Equal(t, ErrBadRating, Code(err))
	}
}

func TestCreate_RentalNotFound(t *testing.T) {
	db, _ := newDB(t)
	m := &mockRepo{
		rentalStatusFn: func(ctx context.Context, rentalID int64) (model.RentalStatus, error) {
			return "", sql.ErrNoRows
		},
	}
	svc := New(db, m)

	err := svc.Create(context.Background(), 1, &model.Review{RentalID: 404, Rating: 5})
	require.Equal(t, ErrRentalNotFound, Code(err))
}

func TestCreate_NotCompleted(t *testing.T) {
	db, _ := newDB(t)
	m := &mockRepo{
		rentalStatusFn: func(ctx context.Context, rentalID int64) (model.RentalStatus, error) {
			return model.RentalActive, nil
		},
	}
	svc := New(db, m)

	err := svc.Create(context.Background(), 1, &model.Review{RentalID: 5, Rating: 5})
	require.Equal(t, ErrNotCompleted, Code(err))
}

func TestCreate_AlreadyReviewed(t *testing.T) {
	db, _ := newDB(t)
	m := &mockRepo{
		rentalStatusFn: func(ctx context.Context, rentalID int64) (model.RentalStatus, error) {
			return model.RentalCompleted, nil
		},
		existsFn: func(ctx context.Context, rentalID, reviewerID int64) (bool, error) {
			return true, nil
		},
	}
	svc := New(db, m)

	err := svc.Create(context.Background(), 1, &model.Review{RentalID: 5, Rating: 5})
	require.Equal(t, ErrAlreadyReviewed, Code(err))
}

func strPtr(s string) *string { return &s }
