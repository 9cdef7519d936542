package category

import (
	"log/slog"
	"net/http"

	"campusrent/model"
	categoryrepo "campusrent/repository/category"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Repo categoryrepo.Repo
	Log  *slog.Logger
}

// GET /api/categories
func (h *Controller) List(c echo.Context) error {
	cats, err := h.Repo.List(c.Request().Context())
	if err != nil {
		h.Log.Error("category list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return c.JSON(http.StatusOK, cats)
}
