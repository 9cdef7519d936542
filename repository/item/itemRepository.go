package itemrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"campusrent/model"
)

// Filters are the SQL-level listing filters. The geo-radius filter is applied
// by the service after rows are loaded, since distance needs the haversine.
type Filters struct {
	CategoryID *int64
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
}

type Repo interface {
	Create(ctx context.Context, it *model.Item, categoryIDs []int64) error
	List(ctx context.Context, f Filters) ([]model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	Detail(ctx context.Context, id int64) (*model.Item, *model.Profile, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, it *model.Item, categoryIDs []int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	images, err := marshalImages(it.Images)
	if err != nil {
		return err
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO items (owner_id, title, description, daily_rate, weekly_rate, deposit,
		                   images, condition, available, location_name, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,TRUE,$9,$10,$11)
		RETURNING id, available, insurance_value, created_at`,
		it.OwnerID, it.Title, it.Description, it.DailyRate, it.WeeklyRate, it.Deposit,
		images, it.Condition, it.LocationName, it.Latitude, it.Longitude,
	).Scan(&it.ID, &it.Available, &it.InsuranceValue, &it.CreatedAt)
	if err != nil {
		return err
	}

	if len(categoryIDs) > 0 {
		// Unknown category ids are skipped, not rejected.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO item_categories (item_id, category_id)
			SELECT $1, id FROM categories WHERE id = ANY($2)`,
			it.ID, categoryIDs)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

const itemCols = `i.id, i.owner_id, i.title, i.description, i.daily_rate, i.weekly_rate,
	i.deposit, i.images, i.condition, i.available, i.location_name, i.latitude, i.longitude,
	i.insurance_value, i.created_at`

func (r *repo) List(ctx context.Context, f Filters) ([]model.Item, error) {
	var (
		where = []string{"i.available = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.CategoryID != nil {
		where = append(where, `EXISTS (
			SELECT 1 FROM item_categories ic WHERE ic.item_id = i.id AND ic.category_id = `+arg(*f.CategoryID)+`)`)
	}
	if f.Search != nil {
		p := arg("%" + *f.Search + "%")
		where = append(where, `(i.title ILIKE `+p+` OR i.description ILIKE `+p+`)`)
	}
	if f.MinPrice != nil {
		where = append(where, `i.daily_rate >= `+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, `i.daily_rate <= `+arg(*f.MaxPrice))
	}

	q := `
		SELECT ` + itemCols + `,
		       u.id, u.full_name, u.rating, u.total_ratings, u.verified
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var (
			it     model.Item
			images sql.NullString
			owner  model.OwnerSummary
		)
		if err := rows.Scan(
			&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.DailyRate, &it.WeeklyRate,
			&it.Deposit, &images, &it.Condition, &it.Available, &it.LocationName,
			&it.Latitude, &it.Longitude, &it.InsuranceValue, &it.CreatedAt,
			&owner.ID, &owner.FullName, &owner.Rating, &owner.TotalRatings, &owner.Verified,
		); err != nil {
			return nil, err
		}
		it.Images = unmarshalImages(images)
		it.Owner = &owner
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	q := `SELECT ` + itemCols + ` FROM items i WHERE i.owner_id = $1 ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var (
			it     model.Item
			images sql.NullString
		)
		if err := rows.Scan(
			&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.DailyRate, &it.WeeklyRate,
			&it.Deposit, &images, &it.Condition, &it.Available, &it.LocationName,
			&it.Latitude, &it.Longitude, &it.InsuranceValue, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		it.Images = unmarshalImages(images)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Item, *model.Profile, error) {
	q := `
		SELECT ` + itemCols + `,
		       u.id, u.email, u.full_name, u.phone, u.verified, u.rating, u.total_ratings,
		       u.bio, u.address, u.profile_image
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.id = $1`
	var (
		it     model.Item
		images sql.NullString
		p      model.Profile
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.DailyRate, &it.WeeklyRate,
		&it.Deposit, &images, &it.Condition, &it.Available, &it.LocationName,
		&it.Latitude, &it.Longitude, &it.InsuranceValue, &it.CreatedAt,
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Verified, &p.Rating, &p.TotalRatings,
		&p.Bio, &p.Address, &p.ProfileImage,
	)
	if err != nil {
		return nil, nil, err
	}
	it.Images = unmarshalImages(images)

	one := []model.Item{it}
	if err := r.attachCategories(ctx, one); err != nil {
		return nil, nil, err
	}
	return &one[0], &p, nil
}

func (r *repo) attachCategories(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	idx := make(map[int64]int, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
		idx[items[i].ID] = i
		items[i].Categories = []model.Category{}
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT ic.item_id, c.id, c.name, c.icon
		FROM item_categories ic
		JOIN categories c ON c.id = ic.category_id
		WHERE ic.item_id = ANY($1)
		ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID int64
			c      model.Category
		)
		if err := rows.Scan(&itemID, &c.ID, &c.Name, &c.Icon); err != nil {
			return err
		}
		i := idx[itemID]
		items[i].Categories = append(items[i].Categories, c)
	}
	return rows.Err()
}

func marshalImages(images []string) (*string, error) {
	if len(images) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func unmarshalImages(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return []string{}
	}
	return out
}
