package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"campusrent/model"
	itemsvc "campusrent/service/item"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
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

	it := &model.Item{
		OwnerID:      uid,
		Title:        req.Title,
		Description:  req.Description,
		DailyRate:    req.DailyRate,
		WeeklyRate:   req.WeeklyRate,
		Deposit:      req.Deposit,
		Condition:    req.Condition,
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Images:       req.Images,
	}
	if err := h.Svc.Create(c.Request().Context(), it, req.CategoryIDs); err != nil {
		switch itemsvc.Code(err) {
		case itemsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("item create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": it.ID, "message": "item created"})
}

// GET /api/items
func (h *Controller) List(c echo.Context) error {
	f := itemsvc.ListFilters{
		CategoryID: qint(c, "category_id"),
		Search:     qstr(c, "search"),
		MinPrice:   qfloat(c, "min_price"),
		MaxPrice:   qfloat(c, "max_price"),
		Latitude:   qfloat(c, "latitude"),
		Longitude:  qfloat(c, "longitude"),
		MaxMiles:   qfloat(c, "max_distance"),
	}
	items, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("item list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if items == nil {
		items = []model.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/items/my-items
func (h *Controller) Mine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	items, err := h.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my items", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if items == nil {
		items = []model.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/items/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	d, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		switch itemsvc.Code(err) {
		case itemsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
		default:
			h.Log.Error("item detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	out := d.Item
	return c.JSON(http.StatusOK, echo.Map{
		"id":              out.ID,
		"owner_id":        out.OwnerID,
		"title":           out.Title,
		"description":     out.Description,
		"daily_rate":      out.DailyRate,
		"weekly_rate":     out.WeeklyRate,
		"deposit":         out.Deposit,
		"condition":       out.Condition,
		"available":       out.Available,
		"location_name":   out.LocationName,
		"latitude":        out.Latitude,
		"longitude":       out.Longitude,
		"insurance_value": out.InsuranceValue,
		"created_at":      out.CreatedAt,
		"images":          out.Images,
		"categories":      out.Categories,
		"owner":           d.Owner,
	})
}

// query param helpers; absent or malformed values mean "filter inactive"

func qstr(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}

func qint(c echo.Context, name string) *int64 {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func qfloat(c echo.Context, name string) *float64 {
	if v := c.QueryParam(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
