// Package main Digital Library API.
//
// @title           Digital Library API
// @version         1.0
// @description     Book catalog aggregation, browse sessions, OTP auth, premium entitlements.
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
	"os"
	"time"

	"digitallibrary/app/echoServer"
	authctrl "digitallibrary/app/echoServer/controller/auth"
	bookctrl "digitallibrary/app/echoServer/controller/book"
	browsectrl "digitallibrary/app/echoServer/controller/browse"
	paymentctrl "digitallibrary/app/echoServer/controller/payment"
	prefsctrl "digitallibrary/app/echoServer/controller/prefs"
	"digitallibrary/app/echoServer/validation"
	"digitallibrary/config"
	"digitallibrary/repository/billing"
	"digitallibrary/repository/gutendex"
	"digitallibrary/repository/openlibrary"
	prefsrepo "digitallibrary/repository/prefs"
	sessionrepo "digitallibrary/repository/session"
	authsvc "digitallibrary/service/auth"
	browsesvc "digitallibrary/service/browse"
	catalogsvc "digitallibrary/service/catalog"
	paymentsvc "digitallibrary/service/payment"
	"digitallibrary/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	// repos
	olr := openlibrary.NewHTTP(cfg.OpenLibraryURL)
	gxr := gutendex.NewHTTP(cfg.GutendexURL)
	sr := sessionrepo.New(db)
	pr := prefsrepo.New(db)
	bp := billing.NewStub(time.Duration(cfg.BillingDelayMS)*time.Millisecond, log)

	// services
	cs := catalogsvc.New(olr, gxr, log)
	as := authsvc.New(sr, authsvc.LogNotifier{Log: log}, cfg.JWTSecret)
	ps := paymentsvc.New(sr, bp)
	reg := browsesvc.NewRegistry(cs, browsesvc.DefaultDebounce, 30*time.Minute)

	// Initial catalog load happens off the serving path; the store stays
	// empty until the first load applies, and /v1/catalog/refresh can rerun
	// it at any time.
	go func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		cs.Refresh(loadCtx)
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cs, Auth: as, V: v, Log: log, Secret: cfg.JWTSecret}
	browseC := &browsectrl.Controller{Reg: reg, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	prefsC := &prefsctrl.Controller{Repo: pr, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status": "ok",
			"books":  cs.Count(),
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Browse:  browseC,
		Payment: paymentC,
		Prefs:   prefsC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
