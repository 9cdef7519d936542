package userrepo

import (
	"context"
	"database/sql"

	"campusrent/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	// New accounts start verified with a 5.0 baseline and no ratings yet.
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(email, password_hash, full_name, phone, verified, rating, total_ratings)
		VALUES ($1,$2,$3,$4,TRUE,5.0,0)
		RETURNING id, verified, rating, total_ratings, created_at`,
		u.Email, u.PasswordHash, u.FullName, u.Phone,
	).Scan(&u.ID, &u.Verified, &u.Rating, &u.TotalRatings, &u.CreatedAt)
}

const userCols = `id, email, password_hash, full_name, phone, verified, rating, total_ratings,
	profile_image, bio, address, latitude, longitude, created_at`

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (r *repo) one(ctx context.Context, q string, arg any) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Verified,
		&u.Rating, &u.TotalRatings, &u.ProfileImage, &u.Bio, &u.Address,
		&u.Latitude, &u.Longitude, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}
