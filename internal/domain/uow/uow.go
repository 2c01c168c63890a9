package uow

import (
	"context"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/proof"
	"peerlend-backend/internal/domain/risk"
	"peerlend-backend/internal/domain/schedule"
)

type Repos struct {
	Offers    loan.OfferRepository
	Loans     loan.Repository
	Schedules schedule.Repository
	Events    schedule.EventRepository
	Proofs    proof.Repository
	Flags     risk.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. This is the
	// lock scope every payment path shares.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
