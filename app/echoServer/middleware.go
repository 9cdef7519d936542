// app/echoServer/middleware.go
package echoServer

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"campusrent/app/echoServer/jwtx"
	"campusrent/app/echoServer/metrics"
	userrepo "campusrent/repository/user"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(metrics.Middleware())

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
			)
			return err
		}
	}
}

// CurrentUser resolves the verified token's email subject to a user row and
// parks it in the context. Runs after echo-jwt, so the signature and expiry
// are already checked.
func CurrentUser(ur userrepo.Repo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, err := jwtx.EmailFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			u, err := ur.ByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			c.Set("current_user", u)
			c.Set("user_id", u.ID)
			return next(c)
		}
	}
}
