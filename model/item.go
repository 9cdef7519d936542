package model

import "time"

type Item struct {
	ID             int64      `json:"id"`
	OwnerID        int64      `json:"owner_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DailyRate      float64    `json:"daily_rate"`
	WeeklyRate     *float64   `json:"weekly_rate,omitempty"`
	Deposit        float64    `json:"deposit"`
	Images         []string   `json:"images"`
	Condition      string     `json:"condition"`
	Available      bool       `json:"available"`
	LocationName   string     `json:"location_name"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	InsuranceValue float64    `json:"insurance_value"`
	CreatedAt      time.Time  `json:"created_at"`
	Categories     []Category `json:"categories"`
	Owner          *OwnerSummary `json:"owner,omitempty"`

	// Distance is set only when the listing query carried a location filter.
	Distance *float64 `json:"distance,omitempty"`
}
