package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	rs "campusrent/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
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

	m, err := h.Svc.Create(c.Request().Context(), uid, rs.CreateReq{
		ItemID:    req.ItemID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Message:   req.Message,
	})
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
		case rs.ErrOwnItem:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot rent your own item"})
		case rs.ErrTooShort:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "rental must be at least 1 day"})
		default:
			h.Log.Error("rental create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID, "message": "rental request created"})
}

// GET /api/rentals/my-rentals
func (h *Controller) MyRentals(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.MyRentals(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my rentals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /api/rentals/:id/approve
func (h *Controller) Approve(c echo.Context) error {
	id, uid, ok := rentalID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Approve(c.Request().Context(), uid, id); err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized"})
		case rs.ErrNotPending:
			return c.JSON(http.StatusConflict, echo.Map{"message": "rental not pending"})
		default:
			h.Log.Error("rental approve", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rental approved"})
}

// PATCH /api/rentals/:id/verify-pickup
func (h *Controller) VerifyPickup(c echo.Context) error {
	id, uid, ok := rentalID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req VerifyReq
	_ = c.Bind(&req) // body is optional
	if err := h.Svc.VerifyPickup(c.Request().Context(), uid, id, req.Photos); err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrAlreadyClosed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "rental already closed"})
		default:
			h.Log.Error("verify pickup", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "pickup verified"})
}

// PATCH /api/rentals/:id/verify-return
func (h *Controller) VerifyReturn(c echo.Context) error {
	id, uid, ok := rentalID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req VerifyReq
	_ = c.Bind(&req) // body is optional
	if err := h.Svc.VerifyReturn(c.Request().Context(), uid, id, req.Photos); err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrAlreadySettled, rs.ErrAlreadyClosed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "rental already closed"})
		default:
			h.Log.Error("verify return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "return verified"})
}

func rentalID(c echo.Context) (id, uid int64, ok bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, false
	}
	uid, _ = c.Get("user_id").(int64)
	return id, uid, true
}
