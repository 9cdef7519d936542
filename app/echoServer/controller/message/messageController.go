package message

import (
	"log/slog"
	"net/http"
	"strconv"

	messagesvc "campusrent/service/message"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc messagesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type SendMessageReq struct {
	RentalID int64  `json:"rental_id" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required"`
}

// POST /api/messages
func (h *Controller) Send(c echo.Context) error {
	var req SendMessageReq
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

	m, err := h.Svc.Send(c.Request().Context(), uid, req.RentalID, req.Content)
	if err != nil {
		switch messagesvc.Code(err) {
		case messagesvc.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case messagesvc.ErrEmptyContent:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "empty content"})
		default:
			h.Log.Error("message send", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID, "message": "message sent"})
}

// GET /api/messages?rental_id=
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	var rentalID *int64
	if v := c.QueryParam("rental_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid rental_id"})
		}
		rentalID = &n
	}

	msgs, err := h.Svc.List(c.Request().Context(), uid, rentalID)
	if err != nil {
		h.Log.Error("message list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, msgs)
}
