package item

type CreateItemReq struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	DailyRate    float64  `json:"daily_rate" validate:"required,gt=0"`
	WeeklyRate   *float64 `json:"weekly_rate,omitempty" validate:"omitempty,gt=0"`
	Deposit      float64  `json:"deposit" validate:"gte=0"`
	CategoryIDs  []int64  `json:"category_ids"`
	Condition    string   `json:"condition" validate:"required"`
	LocationName string   `json:"location_name" validate:"required"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Images       []string `json:"images,omitempty"`
}
