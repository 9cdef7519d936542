package itemsvc

import (
	"context"
	"database/sql"
	"errors"

	"campusrent/model"
	itemrepo "campusrent/repository/item"
	"campusrent/util/geo"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "ITEM_NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
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

// DefaultMaxDistanceMiles applies when a location filter arrives without an
// explicit radius.
const DefaultMaxDistanceMiles = 10.0

// ListFilters composes independently; zero-value fields are inactive.
type ListFilters struct {
	CategoryID *int64
	Search     *string
	MinPrice   *float64
	MaxPrice   *float64
	Latitude   *float64
	Longitude  *float64
	MaxMiles   *float64
}

// Detail couples an item with its owner's public profile.
type Detail struct {
	Item  model.Item    `json:"item"`
	Owner model.Profile `json:"owner"`
}

type Repo interface {
	Create(ctx context.Context, it *model.Item, categoryIDs []int64) error
	List(ctx context.Context, f itemrepo.Filters) ([]model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	Detail(ctx context.Context, id int64) (*model.Item, *model.Profile, error)
}

type Service interface {
	Create(ctx context.Context, it *model.Item, categoryIDs []int64) error
	List(ctx context.Context, f ListFilters) ([]model.Item, error)
	Mine(ctx context.Context, ownerID int64) ([]model.Item, error)
	Get(ctx context.Context, id int64) (*Detail, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, it *model.Item, categoryIDs []int64) error {
	if it.Title == "" || it.Description == "" || it.DailyRate <= 0 || it.Deposit < 0 {
		return makeErr(ErrBadInput)
	}
	return s.r.Create(ctx, it, categoryIDs)
}

func (s *service) List(ctx context.Context, f ListFilters) ([]model.Item, error) {
	items, err := s.r.List(ctx, itemrepo.Filters{
		CategoryID: f.CategoryID,
		Search:     f.Search,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
	})
	if err != nil {
		return nil, err
	}
	if f.Latitude == nil || f.Longitude == nil {
		return items, nil
	}

	maxMiles := DefaultMaxDistanceMiles
	if f.MaxMiles != nil {
		maxMiles = *f.MaxMiles
	}
	// Items without coordinates drop out only under a location filter.
	out := items[:0]
	for i := range items {
		it := items[i]
		if it.Latitude == nil || it.Longitude == nil {
			continue
		}
		d := geo.Miles(*f.Latitude, *f.Longitude, *it.Latitude, *it.Longitude)
		if d > maxMiles {
			continue
		}
		rounded := geo.RoundMiles(d)
		it.Distance = &rounded
		out = append(out, it)
	}
	return out, nil
}

func (s *service) Mine(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return s.r.ListByOwner(ctx, ownerID)
}

func (s *service) Get(ctx context.Context, id int64) (*Detail, error) {
	it, owner, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return &Detail{Item: *it, Owner: *owner}, nil
}
