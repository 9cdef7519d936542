package model

import "time"

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalApproved  RentalStatus = "approved"
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

type Rental struct {
	ID               int64        `json:"id"`
	ItemID           int64        `json:"item_id"`
	RenterID         int64        `json:"renter_id"`
	OwnerID          int64        `json:"owner_id"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	TotalCost        float64      `json:"total_cost"`
	DepositAmount    float64      `json:"deposit_amount"`
	PlatformFee      float64      `json:"platform_fee"`
	OwnerEarnings    float64      `json:"owner_earnings"`
	Status           RentalStatus `json:"status"`
	PickupQR         string       `json:"pickup_qr,omitempty"`
	ReturnQR         string       `json:"return_qr,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	ApprovedAt       *time.Time   `json:"approved_at,omitempty"`
	PickupVerifiedAt *time.Time   `json:"pickup_verified_at,omitempty"`
	ReturnVerifiedAt *time.Time   `json:"return_verified_at,omitempty"`
}
