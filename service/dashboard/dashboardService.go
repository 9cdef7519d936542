package dashboardsvc

import (
	"context"

	"campusrent/model"
	txrepo "campusrent/repository/transaction"

	"github.com/shopspring/decimal"
)

const recentLimit = 10

type Summary struct {
	TotalEarnings   float64             `json:"total_earnings"`
	MonthlyEarnings float64             `json:"monthly_earnings"`
	PendingEarnings float64             `json:"pending_earnings"`
	ActiveRentals   int64               `json:"active_rentals"`
	TotalItems      int64               `json:"total_items"`
	Transactions    []model.Transaction `json:"transactions"`
}

type Repo = txrepo.Repo

type Service interface {
	Earnings(ctx context.Context, userID int64) (*Summary, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Earnings(ctx context.Context, userID int64) (*Summary, error) {
	total, monthly, err := s.r.EarningTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.r.PendingEarnings(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.r.ActiveRentalCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.r.ItemCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.r.RecentEarnings(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []model.Transaction{}
	}

	return &Summary{
		TotalEarnings:   cents(total),
		MonthlyEarnings: cents(monthly),
		PendingEarnings: cents(pending),
		ActiveRentals:   active,
		TotalItems:      items,
		Transactions:    recent,
	}, nil
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
