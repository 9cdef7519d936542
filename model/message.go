package model

import "time"

type Message struct {
	ID         int64     `json:"id"`
	RentalID   int64     `json:"rental_id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	Sender     *Profile  `json:"sender,omitempty"`
}
