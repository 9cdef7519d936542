package review

import (
	"log/slog"
	"net/http"

	"campusrent/model"
	reviewsvc "campusrent/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateReviewReq struct {
	RentalID   int64   `json:"rental_id" validate:"required,gt=0"`
	RevieweeID int64   `json:"reviewee_id" validate:"required,gt=0"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment,omitempty"`
}

// POST /api/reviews
func (h *Controller) Create(c echo.Context) error {
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	rv := &model.Review{
		RentalID:   req.RentalID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.Svc.Create(c.Request().Context(), uid, rv); err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case reviewsvc.ErrNotCompleted:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "can only review completed rentals"})
		case reviewsvc.ErrBadRating:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "rating must be between 1 and 5"})
		case reviewsvc.ErrAlreadyReviewed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "already reviewed this rental"})
		default:
			h.Log.Error("review create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": rv.ID, "message": "review submitted"})
}
