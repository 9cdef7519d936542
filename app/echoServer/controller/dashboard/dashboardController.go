package dashboard

import (
	"log/slog"
	"net/http"

	dashboardsvc "campusrent/service/dashboard"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc dashboardsvc.Service
	Log *slog.Logger
}

// GET /api/dashboard/earnings
func (h *Controller) Earnings(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.Earnings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("earnings summary", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
