package messagerepo

import (
	"context"
	"database/sql"

	"campusrent/model"
)

type Repo interface {
	RentalParties(ctx context.Context, rentalID int64) (renterID, ownerID int64, err error)
	Insert(ctx context.Context, m *model.Message) error
	ListForUser(ctx context.Context, userID int64, rentalID *int64) ([]model.Message, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) RentalParties(ctx context.Context, rentalID int64) (int64, int64, error) {
	const q = `SELECT renter_id, owner_id FROM rentals WHERE id = $1`
	var renterID, ownerID int64
	err := r.db.QueryRowContext(ctx, q, rentalID).Scan(&renterID, &ownerID)
	return renterID, ownerID, err
}

func (r *repo) Insert(ctx context.Context, m *model.Message) error {
	const q = `
		INSERT INTO messages (rental_id, sender_id, receiver_id, content)
		VALUES ($1,$2,$3,$4)
		RETURNING id, read, created_at`
	return r.db.QueryRowContext(ctx, q, m.RentalID, m.SenderID, m.ReceiverID, m.Content).
		Scan(&m.ID, &m.Read, &m.CreatedAt)
}

func (r *repo) ListForUser(ctx context.Context, userID int64, rentalID *int64) ([]model.Message, error) {
	q := `
		SELECT m.id, m.rental_id, m.sender_id, m.receiver_id, m.content, m.read, m.created_at,
		       u.id, u.email, u.full_name, u.phone, u.verified, u.rating, u.total_ratings,
		       u.bio, u.address, u.profile_image
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE (m.sender_id = $1 OR m.receiver_id = $1)`
	args := []any{userID}
	if rentalID != nil {
		q += ` AND m.rental_id = $2`
		args = append(args, *rentalID)
	}
	q += ` ORDER BY m.created_at DESC, m.id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var (
			m model.Message
			s model.Profile
		)
		if err := rows.Scan(
			&m.ID, &m.RentalID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt,
			&s.ID, &s.Email, &s.FullName, &s.Phone, &s.Verified, &s.Rating, &s.TotalRatings,
			&s.Bio, &s.Address, &s.ProfileImage,
		); err != nil {
			return nil, err
		}
		m.Sender = &s
		out = append(out, m)
	}
	return out, rows.Err()
}
