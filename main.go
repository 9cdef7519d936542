// Package main campus rentals API.
//
// @title           Campus Rentals API
// @version         1.0
// @description     Peer-to-peer rental marketplace for a university community.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"campusrent/app/echoServer"
	authctrl "campusrent/app/echoServer/controller/auth"
	categoryctrl "campusrent/app/echoServer/controller/category"
	dashboardctrl "campusrent/app/echoServer/controller/dashboard"
	itemctrl "campusrent/app/echoServer/controller/item"
	messagectrl "campusrent/app/echoServer/controller/message"
	rentalctrl "campusrent/app/echoServer/controller/rental"
	reviewctrl "campusrent/app/echoServer/controller/review"
	"campusrent/app/echoServer/metrics"
	"campusrent/app/echoServer/validation"
	"campusrent/config"
	categoryrepo "campusrent/repository/category"
	itemrepo "campusrent/repository/item"
	messagerepo "campusrent/repository/message"
	rentalrepo "campusrent/repository/rental"
	reviewrepo "campusrent/repository/review"
	txrepo "campusrent/repository/transaction"
	userrepo "campusrent/repository/user"
	authsvc "campusrent/service/auth"
	dashboardsvc "campusrent/service/dashboard"
	itemsvc "campusrent/service/item"
	messagesvc "campusrent/service/message"
	rentalsvc "campusrent/service/rental"
	reviewsvc "campusrent/service/review"
	"campusrent/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	cr := categoryrepo.New(db)
	ir := itemrepo.New(db)
	rr := rentalrepo.New(db)
	mr := messagerepo.New(db)
	vr := reviewrepo.New(db)
	tr := txrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.EmailDomain, cfg.TokenTTLHours)
	is := itemsvc.New(ir)
	rs := rentalsvc.New(db, rr, cfg.PlatformFeePct)
	ms := messagesvc.New(mr)
	vs := reviewsvc.New(db, vr)
	ds := dashboardsvc.New(tr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	categoryC := &categoryctrl.Controller{Repo: cr, Log: log}
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	messageC := &messagectrl.Controller{Svc: ms, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: vs, V: v, Log: log}
	dashboardC := &dashboardctrl.Controller{Svc: ds, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Category:  categoryC,
		Item:      itemC,
		Rental:    rentalC,
		Message:   messageC,
		Review:    reviewC,
		Dashboard: dashboardC,

		JWTSecret: cfg.JWTSecret,
		Users:     ur,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
