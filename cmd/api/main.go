package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lendcore-backend/internal/adapter/http"
	"lendcore-backend/internal/adapter/middleware"
	"lendcore-backend/internal/adapter/repository/mysql"
	"lendcore-backend/internal/config"
	"lendcore-backend/internal/infrastructure/cache"
	"lendcore-backend/internal/infrastructure/db"
	"lendcore-backend/internal/loanparams"
	customeruc "lendcore-backend/internal/usecase/customer"
	loanuc "lendcore-backend/internal/usecase/loan"
	reviewuc "lendcore-backend/internal/usecase/review"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	guow := mysql.NewGormUoW(gdb)
	resolver := loanparams.NewResolver(
		mysql.NewConfigSource(gdb),
		time.Duration(cfg.LoanParamsTTLSecs)*time.Second,
		cfg.LoanParamsCacheMax,
	)

	loans := loanuc.NewUsecase(guow, resolver)
	customers := customeruc.NewUsecase(guow)
	reviews := reviewuc.NewUsecase(guow, loans, customers)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(loans)
	reviewHandler := httpadp.NewReviewHandler(reviews)
	customerHandler := httpadp.NewCustomerHandler(customers)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("",
		middleware.IdentityMiddleware(),
		middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)
	api.POST("/loans", loanHandler.CreateLoan)
	api.GET("/loans/:loan_id", loanHandler.GetLoan)
	api.PATCH("/loans/:loan_id", loanHandler.EditLoan)
	api.POST("/loans/:loan_id/mature", loanHandler.MatureLoan)
	api.POST("/loans/:loan_id/liquidate", loanHandler.LiquidateLoan)

	api.POST("/reviews", reviewHandler.SubmitReview)
	api.GET("/reviews", reviewHandler.ListReviews)
	api.GET("/reviews/:review_id", reviewHandler.GetReview)
	api.PATCH("/reviews/:review_id", reviewHandler.DecideReview)
	api.DELETE("/reviews/:review_id", reviewHandler.RemoveReview)

	api.PATCH("/customers/:customer_id/dates", customerHandler.ChangeDates)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
