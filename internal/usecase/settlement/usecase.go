package settlement

import (
	"context"
	"log"
	"time"

	"peerlend-backend/internal/domain/event"
	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/schedule"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/fault"
	"peerlend-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	pub event.Publisher
}

func NewUsecase(tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{uow: tx, pub: pub}
}

type Result struct {
	SchedulesPaid    int   `json:"schedules_paid"`
	OverpaymentMinor int64 `json:"remaining_overpayment_minor"`
	LoanCompleted    bool  `json:"loan_completed"`
}

// ApplyPayment settles amountMinor against the loan's outstanding installments
// under the loan-scoped lock. The whole application is one transaction.
func (u *Usecase) ApplyPayment(ctx context.Context, loanID string, amountMinor int64, paidAt time.Time, method string) (Result, error) {
	if amountMinor <= 0 {
		return Result{}, fault.Validationf("payment amount must be positive, got %d", amountMinor)
	}

	var (
		res      Result
		borrower string
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		var err error
		res, err = Apply(ctx, r, l, amountMinor, paidAt, method)
		borrower = l.BorrowerID
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if res.LoanCompleted && u.pub != nil {
		if perr := u.pub.Publish(ctx, event.Event{
			Type:       event.TypeLoanCompleted,
			LoanID:     loanID,
			BorrowerID: borrower,
			OccurredAt: time.Now().UTC(),
		}); perr != nil {
			log.Printf("publish loan.completed for %s: %v", loanID, perr)
		}
	}
	return res, nil
}

// Apply is the settlement core. It assumes the caller holds the loan row lock
// inside an open transaction; proof approval and direct payments both call it
// so the two paths cannot diverge. FIFO by installment_no: money never skips
// ahead to a later installment while an earlier one has a deficit.
func Apply(ctx context.Context, r uow.Repos, l *loan.Loan, amountMinor int64, paidAt time.Time, method string) (Result, error) {
	if amountMinor <= 0 {
		return Result{}, fault.Validationf("payment amount must be positive, got %d", amountMinor)
	}
	if l.State != loan.StateActive {
		return Result{}, fault.Conflictf("loan %s is %s, not active", l.LoanID, l.State)
	}

	outstanding, err := r.Schedules.ListOutstandingForUpdate(ctx, l.LoanID)
	if err != nil {
		return Result{}, err
	}
	if len(outstanding) == 0 {
		return Result{}, fault.Conflictf("loan %s has no outstanding installments", l.LoanID)
	}

	remaining := amountMinor
	paidCount := 0
	for _, inst := range outstanding {
		if remaining == 0 {
			break
		}
		deficit := inst.Deficit()
		if deficit <= 0 {
			return Result{}, fault.Invariantf("installment %s/%d outstanding with deficit %d",
				l.LoanID, inst.InstallmentNo, deficit)
		}
		applied := deficit
		if remaining < applied {
			applied = remaining
		}
		inst.PaidAmountMinor += applied
		remaining -= applied

		if err := r.Events.Create(ctx, &schedule.RepaymentEvent{
			EventID:            id.NewID32(),
			LoanID:             l.LoanID,
			ScheduleID:         inst.ScheduleID,
			AmountAppliedMinor: applied,
			Method:             method,
		}); err != nil {
			return Result{}, err
		}

		if inst.PaidAmountMinor > inst.AmountDueMinor {
			return Result{}, fault.Invariantf("installment %s/%d paid %d exceeds due %d",
				l.LoanID, inst.InstallmentNo, inst.PaidAmountMinor, inst.AmountDueMinor)
		}
		if inst.PaidAmountMinor == inst.AmountDueMinor {
			inst.Status = schedule.StatusPaid
			at := paidAt
			inst.PaidAt = &at
			// lateness is derived downstream from paid_at vs due_date, not stored
			inst.IsEarlyPayment = paidAt.Before(inst.DueDate)
			paidCount++
		} else {
			inst.Status = schedule.StatusPartial
		}
		if err := r.Schedules.Save(ctx, inst); err != nil {
			return Result{}, err
		}
	}

	completed := true
	for _, inst := range outstanding {
		if inst.Status != schedule.StatusPaid {
			completed = false
			break
		}
	}

	l.TotalRepaidMinor += amountMinor - remaining
	if completed {
		l.State = loan.StateCompleted
		l.StateUpdatedAt = time.Now().UTC()
	}
	if err := r.Loans.Save(ctx, l); err != nil {
		return Result{}, err
	}

	return Result{
		SchedulesPaid:    paidCount,
		OverpaymentMinor: remaining,
		LoanCompleted:    completed,
	}, nil
}
