package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone,omitempty"`
	Verified     bool      `json:"verified"`
	Rating       float64   `json:"rating"`
	TotalRatings int64     `json:"total_ratings"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the public shape of a user embedded in API responses.
type Profile struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Phone        *string `json:"phone,omitempty"`
	Verified     bool    `json:"verified"`
	Rating       float64 `json:"rating"`
	TotalRatings int64   `json:"total_ratings"`
	Bio          *string `json:"bio,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// OwnerSummary is the slim owner block attached to marketplace listings.
type OwnerSummary struct {
	ID           int64   `json:"id"`
	FullName     string  `json:"full_name"`
	Rating       float64 `json:"rating"`
	TotalRatings int64   `json:"total_ratings"`
	Verified     bool    `json:"verified"`
}

func (u *User) Public() Profile {
	return Profile{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Phone:        u.Phone,
		Verified:     u.Verified,
		Rating:       u.Rating,
		TotalRatings: u.TotalRatings,
		Bio:          u.Bio,
		Address:      u.Address,
		ProfileImage: u.ProfileImage,
	}
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
