package messagesvc

import (
	"context"
	"database/sql"
	"errors"

	"campusrent/model"
	messagerepo "campusrent/repository/message"
)

type ErrCode string

const (
	ErrRentalNotFound ErrCode = "RENTAL_NOT_FOUND"
	ErrEmptyContent   ErrCode = "EMPTY_CONTENT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo = messagerepo.Repo

type Service interface {
	// Send records a message under a rental; the receiver is always the
	// rental party the sender is not.
	Send(ctx context.Context, senderID, rentalID int64, content string) (*model.Message, error)
	List(ctx context.Context, userID int64, rentalID *int64) ([]model.Message, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Send(ctx context.Context, senderID, rentalID int64, content string) (*model.Message, error) {
	if content == "" {
		return nil, makeErr(ErrEmptyContent)
	}
	renterID, ownerID, err := s.r.RentalParties(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}

	// Sender is assumed to be one of the two parties; a renter messages the
	// owner and anyone else messages the renter.
	receiverID := ownerID
	if senderID != renterID {
		receiverID = renterID
	}

	m := &model.Message{
		RentalID:   rentalID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.r.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context, userID int64, rentalID *int64) ([]model.Message, error) {
	msgs, err := s.r.ListForUser(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return msgs, nil
}
