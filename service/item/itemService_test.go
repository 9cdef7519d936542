package itemsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"campusrent/model"
	itemrepo "campusrent/repository/item"
	itemsvc "campusrent/service/item"
)

type repoMock struct {
	createFn      func(ctx context.Context, it *model.Item, categoryIDs []int64) error
	listFn        func(ctx context.Context, f itemrepo.Filters) ([]model.Item, error)
	listByOwnerFn func(ctx context.Context, ownerID int64) ([]model.Item, error)
	detailFn      func(ctx context.Context, id int64) (*model.Item, *model.Profile, error)
}

func (m *repoMock) Create(ctx context.Context, it *model.Item, categoryIDs []int64) error {
	return m.createFn(ctx, it, categoryIDs)
}
func (m *repoMock) List(ctx context.Context, f itemrepo.Filters) ([]model.Item, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return m.listByOwnerFn(ctx, ownerID)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Item, *model.Profile, error) {
	return m.detailFn(ctx, id)
}

func f64(v float64) *float64 { return &v }

func TestCreate_Validation(t *testing.T) {
	s := itemsvc.New(&repoMock{})
	ctx := context.Background()

	bad := []model.Item{
		{Title: "", Description: "d", DailyRate: 10},
		{Title: "t", Description: "", DailyRate: 10},
		{Title: "t", Description: "d", DailyRate: 0},
		{Title: "t", Description: "d", DailyRate: 10, Deposit: -1},
	}
	for i := range bad {
		if err := s.Create(ctx, &bad[i], nil); itemsvc.Code(err) != itemsvc.ErrBadInput {
			t.Fatalf("case %d: got %v; want BAD_INPUT", i, err)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, it *model.Item, categoryIDs []int64) error {
			it.ID = 42
			return nil
		},
	}
	s := itemsvc.New(m)

	it := model.Item{Title: "Cordless drill", Description: "18V, two batteries", DailyRate: 8, Deposit: 25}
	if err := s.Create(context.Background(), &it, []int64{1, 2}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if it.ID != 42 {
		t.Fatalf("got id=%d; want 42", it.ID)
	}
}

func TestList_NoLocationFilter(t *testing.T) {
	// Without a location filter, coordless items stay in the results.
	m := &repoMock{
		listFn: func(ctx context.Context, f itemrepo.Filters) ([]model.Item, error) {
			return []model.Item{
				{ID: 1, Latitude: f64(29.65), Longitude: f64(-82.32)},
				{ID: 2},
			}, nil
		},
	}
	s := itemsvc.New(m)

	items, err := s.List(context.Background(), itemsvc.ListFilters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items; want 2", len(items))
	}
	if items[0].Distance != nil || items[1].Distance != nil {
		t.Fatal("distance must not be set without a location filter")
	}
}

func TestList_LocationFilter(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, f itemrepo.Filters) ([]model.Item, error) {
			return []model.Item{
				{ID: 1, Latitude: f64(29.6500), Longitude: f64(-82.3200)}, // at the pin
				{ID: 2, Latitude: f64(29.6600), Longitude: f64(-82.3200)}, // ~0.7 mi away
				{ID: 3, Latitude: f64(30.6500), Longitude: f64(-82.3200)}, // ~69 mi away
				{ID: 4},                                                   // no coordinates
			}, nil
		},
	}
	s := itemsvc.New(m)

	items, err := s.List(context.Background(), itemsvc.ListFilters{
		Latitude:  f64(29.65),
		Longitude: f64(-82.32),
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items; want 2 within the default 10 mile radius", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("got ids %d,%d; want 1,2", items[0].ID, items[1].ID)
	}
	if items[0].Distance == nil || *items[0].Distance != 0.0 {
		t.Fatalf("item at the pin: distance %v; want 0.0", items[0].Distance)
	}
	if items[1].Distance == nil || *items[1].Distance <= 0 || *items[1].Distance > 1 {
		t.Fatalf("nearby item: distance %v; want ~0.7", items[1].Distance)
	}
}

func TestList_CustomRadius(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, f itemrepo.Filters) ([]model.Item, error) {
			return []model.Item{
				{ID: 3, Latitude: f64(30.65), Longitude: f64(-82.32)},
			}, nil
		},
	}
	s := itemsvc.New(m)

	items, err := s.List(context.Background(), itemsvc.ListFilters{
		Latitude:  f64(29.65),
		Longitude: f64(-82.32),
		MaxMiles:  f64(100),
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items; want 1 within 100 miles", len(items))
	}
	if d := *items[0].Distance; d < 68 || d > 70 {
		t.Fatalf("one degree of latitude: got %v miles; want ~69", d)
	}
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Item, *model.Profile, error) {
			return nil, nil, sql.ErrNoRows
		},
	}
	s := itemsvc.New(m)

	_, err := s.Get(context.Background(), 999)
	if itemsvc.Code(err) != itemsvc.ErrNotFound {
		t.Fatalf("got %v; want ITEM_NOT_FOUND", err)
	}
}

func TestGet_Success(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.Item, *model.Profile, error) {
			return &model.Item{ID: id, Title: "Kayak"}, &model.Profile{ID: 5, FullName: "Sam Ortiz"}, nil
		},
	}
	s := itemsvc.New(m)

	d, err := s.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Item.ID != 3 || d.Owner.ID != 5 {
		t.Fatalf("got item %d owner %d; want 3 and 5", d.Item.ID, d.Owner.ID)
	}
}
