package model

import "time"

type TransactionType string

const (
	TxEarning TransactionType = "earning"
	TxPayout  TransactionType = "payout"
	TxDeposit TransactionType = "deposit"
	TxRefund  TransactionType = "refund"
)

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	RentalID    *int64          `json:"rental_id,omitempty"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Status      string          `json:"status"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
