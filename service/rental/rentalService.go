package rentalsvc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusrent/model"
	rentalrepo "campusrent/repository/rental"
	"campusrent/util/qr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// errors used by controllers

type ErrCode string

const (
	ErrItemNotFound   ErrCode = "ITEM_NOT_FOUND"
	ErrNotFound       ErrCode = "RENTAL_NOT_FOUND"
	ErrOwnItem        ErrCode = "OWN_ITEM"
	ErrTooShort       ErrCode = "TOO_SHORT"
	ErrNotOwner       ErrCode = "NOT_OWNER"
	ErrNotPending     ErrCode = "NOT_PENDING"
	ErrAlreadyClosed  ErrCode = "ALREADY_CLOSED"
	ErrAlreadySettled ErrCode = "ALREADY_SETTLED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type CreateReq struct {
	ItemID    int64
	StartDate time.Time
	EndDate   time.Time
	Message   *string
}

// View is one rental in the my-rentals response; the QR fields carry rendered
// image data URIs, not the raw tokens.
type View struct {
	ID               int64              `json:"id"`
	Item             ItemSummary        `json:"item"`
	Renter           model.Profile      `json:"renter"`
	Owner            model.Profile      `json:"owner"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	TotalCost        float64            `json:"total_cost"`
	DepositAmount    float64            `json:"deposit_amount"`
	PlatformFee      float64            `json:"platform_fee"`
	OwnerEarnings    float64            `json:"owner_earnings"`
	Status           model.RentalStatus `json:"status"`
	PickupQR         string             `json:"pickup_qr,omitempty"`
	ReturnQR         string             `json:"return_qr,omitempty"`
	PickupPhotos     []string           `json:"pickup_photos"`
	ReturnPhotos     []string           `json:"return_photos"`
	CreatedAt        time.Time          `json:"created_at"`
	ApprovedAt       *time.Time         `json:"approved_at,omitempty"`
	PickupVerifiedAt *time.Time         `json:"pickup_verified_at,omitempty"`
	ReturnVerifiedAt *time.Time         `json:"return_verified_at,omitempty"`
}

type ItemSummary struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

type History struct {
	AsRenter []View `json:"as_renter"`
	AsOwner  []View `json:"as_owner"`
}

type Repo = rentalrepo.Repo

type Service interface {
	// Create prices the request, mints the pickup/return tokens and records
	// the rental in pending state (plus the optional opening message).
	Create(ctx context.Context, renterID int64, req CreateReq) (*model.Rental, error)

	Approve(ctx context.Context, callerID, rentalID int64) error
	VerifyPickup(ctx context.Context, callerID, rentalID int64, photos []string) error
	// VerifyReturn completes the rental and credits the owner's earnings,
	// at most once per rental.
	VerifyReturn(ctx context.Context, callerID, rentalID int64, photos []string) error

	MyRentals(ctx context.Context, userID int64) (*History, error)
}

// ----- Service implementation -----

type service struct {
	db  *sql.DB
	r   Repo
	fee decimal.Decimal
}

// New wires the store and the platform fee fraction (e.g. "0.15").
func New(db *sql.DB, r Repo, feePercent string) Service {
	fee, err := decimal.NewFromString(feePercent)
	if err != nil {
		fee = decimal.NewFromFloat(0.15)
	}
	return &service{db: db, r: r, fee: fee}
}

func (s *service) Create(ctx context.Context, renterID int64, req CreateReq) (m *model.Rental, err error) {
	item, err := s.r.ItemForRental(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrItemNotFound)
		}
		return nil, err
	}
	if item.OwnerID == renterID {
		return nil, makeErr(ErrOwnItem)
	}

	days := WholeDays(req.StartDate, req.EndDate)
	if days < 1 {
		return nil, makeErr(ErrTooShort)
	}
	p := ComputePricing(item.DailyRate, days, s.fee)

	m = &model.Rental{
		ItemID:        req.ItemID,
		RenterID:      renterID,
		OwnerID:       item.OwnerID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalCost:     p.Total,
		DepositAmount: item.Deposit,
		PlatformFee:   p.Fee,
		OwnerEarnings: p.Earnings,
		Status:        model.RentalPending,
		PickupQR:      mintToken("PICKUP", req.ItemID, renterID),
		ReturnQR:      mintToken("RETURN", req.ItemID, renterID),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.r.Insert(ctx, tx, m); err != nil {
		return nil, err
	}
	if req.Message != nil && *req.Message != "" {
		if err = s.r.InsertMessage(ctx, tx, m.ID, renterID, item.OwnerID, *req.Message); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Approve(ctx context.Context, callerID, rentalID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if m.OwnerID != callerID {
		return makeErr(ErrNotOwner)
	}
	if m.Status != model.RentalPending {
		return makeErr(ErrNotPending)
	}
	if err = s.r.SetApproved(ctx, tx, rentalID); err != nil {
		return err
	}
	return tx.Commit()
}

// VerifyPickup is open to any authenticated user; in-person possession of the
// pickup code stands in for an ownership check.
func (s *service) VerifyPickup(ctx context.Context, callerID, rentalID int64, photos []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	// Status never moves backward out of a terminal state.
	if m.Status == model.RentalCompleted || m.Status == model.RentalCancelled {
		return makeErr(ErrAlreadyClosed)
	}
	if err = s.r.SetPickupVerified(ctx, tx, rentalID, encodePhotos(photos)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) VerifyReturn(ctx context.Context, callerID, rentalID int64, photos []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	// A second verify-return must not double-credit the owner.
	if m.Status == model.RentalCompleted {
		return makeErr(ErrAlreadySettled)
	}
	if m.Status == model.RentalCancelled {
		return makeErr(ErrAlreadyClosed)
	}

	if err = s.r.SetReturnVerified(ctx, tx, rentalID, encodePhotos(photos)); err != nil {
		return err
	}
	title, err := s.r.ItemTitle(ctx, tx, m.ItemID)
	if err != nil {
		return err
	}
	desc := fmt.Sprintf("Earned from renting '%s'", title)
	if err = s.r.InsertEarning(ctx, tx, m.OwnerID, m.ID, m.OwnerEarnings, desc); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) MyRentals(ctx context.Context, userID int64) (*History, error) {
	asRenter, err := s.r.ListAsRenter(ctx, userID)
	if err != nil {
		return nil, err
	}
	asOwner, err := s.r.ListAsOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	h := &History{AsRenter: []View{}, AsOwner: []View{}}
	for _, row := range asRenter {
		h.AsRenter = append(h.AsRenter, toView(row))
	}
	for _, row := range asOwner {
		h.AsOwner = append(h.AsOwner, toView(row))
	}
	return h, nil
}

func toView(row rentalrepo.HistoryRow) View {
	m := row.Rental
	v := View{
		ID:               m.ID,
		Item:             ItemSummary{ID: m.ItemID, Title: row.ItemTitle, Images: row.ItemImages},
		Renter:           row.Renter,
		Owner:            row.Owner,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		TotalCost:        m.TotalCost,
		DepositAmount:    m.DepositAmount,
		PlatformFee:      m.PlatformFee,
		OwnerEarnings:    m.OwnerEarnings,
		Status:           m.Status,
		PickupPhotos:     row.PickupPhotos,
		ReturnPhotos:     row.ReturnPhotos,
		CreatedAt:        m.CreatedAt,
		ApprovedAt:       m.ApprovedAt,
		PickupVerifiedAt: m.PickupVerifiedAt,
		ReturnVerifiedAt: m.ReturnVerifiedAt,
	}
	if img, err := qr.DataURI(m.PickupQR); err == nil {
		v.PickupQR = img
	}
	if img, err := qr.DataURI(m.ReturnQR); err == nil {
		v.ReturnQR = img
	}
	return v
}

// encodePhotos packs handover photos into the JSON text column shape; nil
// means "leave the stored value alone".
func encodePhotos(photos []string) *string {
	if len(photos) == 0 {
		return nil
	}
	b, err := json.Marshal(photos)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// mintToken builds an opaque per-rental verification token. The uuid suffix
// keeps it unguessable even when item, renter and timestamp are known.
func mintToken(kind string, itemID, renterID int64) string {
	return fmt.Sprintf("%s-%d-%d-%d-%s", kind, itemID, renterID, time.Now().UTC().Unix(), uuid.NewString())
}

// WholeDays is the rental duration in whole days; partial days do not count.
func WholeDays(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours() / 24)
}

// Pricing splits a rental's total into the platform fee and the owner's cut.
type Pricing struct {
	Total    float64
	Fee      float64
	Earnings float64
}

// ComputePricing keeps the fee at cent precision so Total == Fee + Earnings
// holds exactly.
func ComputePricing(dailyRate float64, days int64, feePercent decimal.Decimal) Pricing {
	total := decimal.NewFromFloat(dailyRate).Mul(decimal.NewFromInt(days))
	fee := total.Mul(feePercent).Round(2)
	earnings := total.Sub(fee)
	return Pricing{
		Total:    total.InexactFloat64(),
		Fee:      fee.InexactFloat64(),
		Earnings: earnings.InexactFloat64(),
	}
}
