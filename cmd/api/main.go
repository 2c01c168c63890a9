package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "peerlend-backend/internal/adapter/http"
	idemp "peerlend-backend/internal/adapter/middleware"
	"peerlend-backend/internal/adapter/notify"
	"peerlend-backend/internal/adapter/repository/mysql"
	"peerlend-backend/internal/config"
	loanDomain "peerlend-backend/internal/domain/loan"
	proofDomain "peerlend-backend/internal/domain/proof"
	riskDomain "peerlend-backend/internal/domain/risk"
	scheduleDomain "peerlend-backend/internal/domain/schedule"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	loanUC "peerlend-backend/internal/usecase/loan"
	proofUC "peerlend-backend/internal/usecase/proof"
	riskUC "peerlend-backend/internal/usecase/risk"
	scoreUC "peerlend-backend/internal/usecase/score"
	settlementUC "peerlend-backend/internal/usecase/settlement"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&loanDomain.Offer{},
		&loanDomain.Loan{},
		&scheduleDomain.Installment{},
		&scheduleDomain.RepaymentEvent{},
		&proofDomain.Proof{},
		&riskDomain.Flag{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	offers := mysql.NewOfferRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	schedules := mysql.NewScheduleRepository(gdb)
	proofs := mysql.NewProofRepository(gdb)
	flags := mysql.NewRiskFlagRepository(gdb)
	guow := mysql.NewGormUoW(gdb)
	pub := notify.NewRedisPublisher(rdb, cfg.EventChannel)

	loanUsecase := loanUC.NewUsecase(offers, loans, schedules, guow, pub)
	settlementUsecase := settlementUC.NewUsecase(guow, pub)
	proofUsecase := proofUC.NewUsecase(proofs, loans, guow, pub)
	riskUsecase := riskUC.NewUsecase(flags, guow, pub)
	scoreUsecase := scoreUC.NewUsecase(loans, schedules, flags, scoreUC.Baseline{})

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(loanUsecase)
	paymentHandler := httpadp.NewPaymentHandler(settlementUsecase)
	proofHandler := httpadp.NewProofHandler(proofUsecase)
	riskHandler := httpadp.NewRiskHandler(riskUsecase, scoreUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/offers", loanHandler.CreateOffer)
	e.GET("/offers/:offer_id", loanHandler.GetOffer)
	e.POST("/offers/:offer_id/accept", loanHandler.AcceptOffer)

	e.GET("/loans/:loan_id", loanHandler.GetLoan)
	e.POST("/loans/:loan_id/sign", loanHandler.Sign)
	e.POST("/loans/:loan_id/disburse", loanHandler.Disburse)
	e.POST("/loans/:loan_id/cancel", loanHandler.Cancel)
	e.POST("/loans/:loan_id/default", loanHandler.MarkDefaulted)
	e.POST("/loans/:loan_id/payments", paymentHandler.RecordPayment)
	e.POST("/loans/:loan_id/proofs", proofHandler.Submit)

	e.GET("/proofs/:proof_id", proofHandler.Get)
	e.POST("/proofs/:proof_id/approve", proofHandler.Approve)
	e.POST("/proofs/:proof_id/reject", proofHandler.Reject)

	e.POST("/risk-flags", riskHandler.Flag)
	e.POST("/risk-flags/:flag_id/resolve", riskHandler.Resolve)
	e.GET("/borrowers/:borrower_id/risk", riskHandler.Summary)
	e.GET("/borrowers/:borrower_id/score", riskHandler.Score)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
