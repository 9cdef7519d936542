package rental

import "time"

type CreateRentalReq struct {
	ItemID    int64     `json:"item_id" validate:"required,gt=0"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Message   *string   `json:"message,omitempty"`
}

// VerifyReq is the optional body of the two verify endpoints; photos document
// the item's condition at handover.
type VerifyReq struct {
	Photos []string `json:"photos,omitempty"`
}
