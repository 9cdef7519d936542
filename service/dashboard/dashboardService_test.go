package dashboardsvc

import (
	"context"
	"testing"

	"campusrent/model"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	earningTotalsFn   func(ctx context.Context, userID int64) (float64, float64, error)
	pendingEarningsFn func(ctx context.Context, userID int64) (float64, error)
	activeRentalsFn   func(ctx context.Context, userID int64) (int64, error)
	itemCountFn       func(ctx context.Context, userID int64) (int64, error)
	recentEarningsFn  func(ctx context.Context, userID int64, limit int) ([]model.Transaction, error)
}

func (m *mockRepo) EarningTotals(ctx context.Context, userID int64) (float64, float64, error) {
	return m.earningTotalsFn(ctx, userID)
}
func (m *mockRepo) PendingEarnings(ctx context.Context, userID int64) (float64, error) {
	return m.pendingEarningsFn(ctx, userID)
}
func (m *mockRepo) ActiveRentalCount(ctx context.Context, userID int64) (int64, error) {
	return m.activeRentalsFn(ctx, userID)
}
func (m *mockRepo) ItemCount(ctx context.Context, userID int64) (int64, error) {
	return m.itemCountFn(ctx, userID)
}
func (m *mockRepo) RecentEarnings(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	return m.recentEarningsFn(ctx, userID, limit)
}

func TestEarnings(t *testing.T) {
	m := &mockRepo{
		earningTotalsFn: func(ctx context.Context, userID int64) (float64, float64, error) {
			// raw sums carry float drift from repeated additions
			return 152.99000000000004, 51.0, nil
		},
		pendingEarningsFn: func(ctx context.Context, userID int64) (float64, error) {
			return 25.5, nil
		},
		activeRentalsFn: func(ctx context.Context, userID int64) (int64, error) {
			return 2, nil
		},
		itemCountFn: func(ctx context.Context, userID int64) (int64, error) {
			return 7, nil
		},
		recentEarningsFn: func(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
			require.Equal(t, recentLimit, limit)
			return []model.Transaction{{ID: 1, Amount: 51}}, nil
		},
	}
	svc := New(m)

	out, err := svc.Earnings(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 152.99, out.TotalEarnings)
	require.Equal(t, 51.0, out.MonthlyEarnings)
	require.Equal(t, 25.5, out.PendingEarnings)
	require.Equal(t, int64(2), out.ActiveRentals)
	require.Equal(t, int64(7), out.TotalItems)
	require.Len(t, out.Transactions, 1)
}

func TestEarnings_NoHistory(t *testing.T) {
	m := &mockRepo{
		earningTotalsFn:   func(ctx context.Context, userID int64) (float64, float64, error) { return 0, 0, nil },
		pendingEarningsFn: func(ctx context.Context, userID int64) (float64, error) { return 0, nil },
		activeRentalsFn:   func(ctx context.Context, userID int64) (int64, error) { return 0, nil },
		itemCountFn:       func(ctx context.Context, userID int64) (int64, error) { return 0, nil },
		recentEarningsFn: func(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
			return nil, nil
		},
	}
	svc := New(m)

	out, err := svc.Earnings(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, out.Transactions)
	require.Empty(t, out.Transactions)
	require.Zero(t, out.TotalEarnings)
}
