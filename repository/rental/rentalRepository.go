package rentalrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campusrent/model"
)

// ItemSnapshot is the slice of an item a new rental needs at creation time.
type ItemSnapshot struct {
	OwnerID   int64
	Title     string
	DailyRate float64
	Deposit   float64
}

// HistoryRow is one rental in the my-rentals listing with both profiles and
// the item summary joined in.
type HistoryRow struct {
	Rental       model.Rental
	ItemTitle    string
	ItemImages   []string
	PickupPhotos []string
	ReturnPhotos []string
	Renter       model.Profile
	Owner        model.Profile
}

type Repo interface {
	ItemForRental(ctx context.Context, itemID int64) (*ItemSnapshot, error)

	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	InsertMessage(ctx context.Context, tx *sql.Tx, rentalID, senderID, receiverID int64, content string) error

	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)
	SetApproved(ctx context.Context, tx *sql.Tx, rentalID int64) error
	SetPickupVerified(ctx context.Context, tx *sql.Tx, rentalID int64, photos *string) error
	SetReturnVerified(ctx context.Context, tx *sql.Tx, rentalID int64, photos *string) error
	InsertEarning(ctx context.Context, tx *sql.Tx, ownerID, rentalID int64, amount float64, description string) error
	ItemTitle(ctx context.Context, tx *sql.Tx, itemID int64) (string, error)

	ListAsRenter(ctx context.Context, userID int64) ([]HistoryRow, error)
	ListAsOwner(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ItemForRental(ctx context.Context, itemID int64) (*ItemSnapshot, error) {
	const q = `
		SELECT owner_id, title, daily_rate, deposit
		FROM items
		WHERE id = $1`
	s := &ItemSnapshot{}
	err := r.db.QueryRowContext(ctx, q, itemID).Scan(&s.OwnerID, &s.Title, &s.DailyRate, &s.Deposit)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	const q = `
		INSERT INTO rentals (item_id, renter_id, owner_id, start_date, end_date,
		                     total_cost, deposit_amount, platform_fee, owner_earnings,
		                     status, pickup_qr, return_qr)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,'pending',$10,$11)
		RETURNING id, status, created_at`
	return tx.QueryRowContext(ctx, q,
		m.ItemID, m.RenterID, m.OwnerID, m.StartDate, m.EndDate,
		m.TotalCost, m.DepositAmount, m.PlatformFee, m.OwnerEarnings,
		m.PickupQR, m.ReturnQR,
	).Scan(&m.ID, &m.Status, &m.CreatedAt)
}

func (r *repo) InsertMessage(ctx context.Context, tx *sql.Tx, rentalID, senderID, receiverID int64, content string) error {
	const q = `
		INSERT INTO messages (rental_id, sender_id, receiver_id, content)
		VALUES ($1,$2,$3,$4)`
	_, err := tx.ExecContext(ctx, q, rentalID, senderID, receiverID, content)
	return err
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error) {
	const q = `
		SELECT id, item_id, renter_id, owner_id, start_date, end_date,
		       total_cost, deposit_amount, platform_fee, owner_earnings,
		       status, pickup_qr, return_qr, created_at
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	m := &model.Rental{}
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(
		&m.ID, &m.ItemID, &m.RenterID, &m.OwnerID, &m.StartDate, &m.EndDate,
		&m.TotalCost, &m.DepositAmount, &m.PlatformFee, &m.OwnerEarnings,
		&m.Status, &m.PickupQR, &m.ReturnQR, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) SetApproved(ctx context.Context, tx *sql.Tx, rentalID int64) error {
	const q = `
		UPDATE rentals
		SET status = 'approved',
		    approved_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID)
	return err
}

func (r *repo) SetPickupVerified(ctx context.Context, tx *sql.Tx, rentalID int64, photos *string) error {
	const q = `
		UPDATE rentals
		SET status = 'active',
		    pickup_verified_at = NOW(),
		    pickup_photos = COALESCE($2, pickup_photos)
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, photos)
	return err
}

func (r *repo) SetReturnVerified(ctx context.Context, tx *sql.Tx, rentalID int64, photos *string) error {
	const q = `
		UPDATE rentals
		SET status = 'completed',
		    return_verified_at = NOW(),
		    return_photos = COALESCE($2, return_photos)
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, photos)
	return err
}

func (r *repo) InsertEarning(ctx context.Context, tx *sql.Tx, ownerID, rentalID int64, amount float64, description string) error {
	const q = `
		INSERT INTO transactions (user_id, rental_id, amount, type, status, description)
		VALUES ($1,$2,$3,'earning','completed',$4)`
	_, err := tx.ExecContext(ctx, q, ownerID, rentalID, amount, description)
	return err
}

func (r *repo) ItemTitle(ctx context.Context, tx *sql.Tx, itemID int64) (string, error) {
	var title string
	err := tx.QueryRowContext(ctx, `SELECT title FROM items WHERE id = $1`, itemID).Scan(&title)
	return title, err
}

const historyQuery = `
	SELECT r.id, r.item_id, r.renter_id, r.owner_id, r.start_date, r.end_date,
	       r.total_cost, r.deposit_amount, r.platform_fee, r.owner_earnings,
	       r.status, r.pickup_qr, r.return_qr, r.created_at,
	       r.approved_at, r.pickup_verified_at, r.return_verified_at,
	       r.pickup_photos, r.return_photos,
	       i.title, i.images,
	       ru.id, ru.email, ru.full_name, ru.phone, ru.verified, ru.rating, ru.total_ratings,
	       ru.bio, ru.address, ru.profile_image,
	       ou.id, ou.email, ou.full_name, ou.phone, ou.verified, ou.rating, ou.total_ratings,
	       ou.bio, ou.address, ou.profile_image
	FROM rentals r
	JOIN items i ON i.id = r.item_id
	JOIN users ru ON ru.id = r.renter_id
	JOIN users ou ON ou.id = r.owner_id
	WHERE %s = $1
	ORDER BY r.created_at DESC, r.id DESC`

func (r *repo) ListAsRenter(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return r.history(ctx, "r.renter_id", userID)
}

func (r *repo) ListAsOwner(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return r.history(ctx, "r.owner_id", userID)
}

func (r *repo) history(ctx context.Context, col string, userID int64) ([]HistoryRow, error) {
	// col is one of two fixed identifiers, never user input.
	q := fmt.Sprintf(historyQuery, col)
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var (
			h            HistoryRow
			images       sql.NullString
			pickupPhotos sql.NullString
			returnPhotos sql.NullString
		)
		m := &h.Rental
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.RenterID, &m.OwnerID, &m.StartDate, &m.EndDate,
			&m.TotalCost, &m.DepositAmount, &m.PlatformFee, &m.OwnerEarnings,
			&m.Status, &m.PickupQR, &m.ReturnQR, &m.CreatedAt,
			&m.ApprovedAt, &m.PickupVerifiedAt, &m.ReturnVerifiedAt,
			&pickupPhotos, &returnPhotos,
			&h.ItemTitle, &images,
			&h.Renter.ID, &h.Renter.Email, &h.Renter.FullName, &h.Renter.Phone, &h.Renter.Verified,
			&h.Renter.Rating, &h.Renter.TotalRatings, &h.Renter.Bio, &h.Renter.Address, &h.Renter.ProfileImage,
			&h.Owner.ID, &h.Owner.Email, &h.Owner.FullName, &h.Owner.Phone, &h.Owner.Verified,
			&h.Owner.Rating, &h.Owner.TotalRatings, &h.Owner.Bio, &h.Owner.Address, &h.Owner.ProfileImage,
		); err != nil {
			return nil, err
		}
		h.ItemImages = decodeImages(images)
		h.PickupPhotos = decodeImages(pickupPhotos)
		h.ReturnPhotos = decodeImages(returnPhotos)
		out = append(out, h)
	}
	return out, rows.Err()
}

func decodeImages(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return []string{}
	}
	return out
}
