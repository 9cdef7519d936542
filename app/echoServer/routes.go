package echoServer

import (
	"campusrent/app/echoServer/controller/auth"
	"campusrent/app/echoServer/controller/category"
	"campusrent/app/echoServer/controller/dashboard"
	"campusrent/app/echoServer/controller/item"
	"campusrent/app/echoServer/controller/message"
	"campusrent/app/echoServer/controller/rental"
	"campusrent/app/echoServer/controller/review"
	userrepo "campusrent/repository/user"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Category  *category.Controller
	Item      *item.Controller
	Rental    *rental.Controller
	Message   *message.Controller
	Review    *review.Controller
	Dashboard *dashboard.Controller

	JWTSecret string
	Users     userrepo.Repo
}

func Register(e *echo.Echo, c C) {
	// Public: registration, login and marketplace browsing
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)
	pub.GET("/categories", c.Category.List)
	pub.GET("/items", c.Item.List)
	pub.GET("/items/:id", c.Item.Detail)

	// Everything else requires a verified bearer token resolved to a user row.
	authed := e.Group("/api")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
	}))
	authed.Use(CurrentUser(c.Users))

	authed.GET("/auth/me", c.Auth.Me)

	authed.POST("/items", c.Item.Create)
	authed.GET("/items/my-items", c.Item.Mine)

	authed.POST("/rentals", c.Rental.Create)
	authed.GET("/rentals/my-rentals", c.Rental.MyRentals)
	authed.PATCH("/rentals/:id/approve", c.Rental.Approve)
	authed.PATCH("/rentals/:id/verify-pickup", c.Rental.VerifyPickup)
	authed.PATCH("/rentals/:id/verify-return", c.Rental.VerifyReturn)

	authed.GET("/messages", c.Message.List)
	authed.POST("/messages", c.Message.Send)

	authed.POST("/reviews", c.Review.Create)

	authed.GET("/dashboard/earnings", c.Dashboard.Earnings)
}
