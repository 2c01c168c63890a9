package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/fault"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Offers:    &OfferRepository{db: tx},
		Loans:     &LoanRepository{db: tx},
		Schedules: &ScheduleRepository{db: tx},
		Events:    &RepaymentEventRepository{db: tx},
		Proofs:    &ProofRepository{db: tx},
		Flags:     &RiskFlagRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFoundf("loan %s not found", loanID)
			}
			return err
		}
		return fn(r, l)
	})
}
