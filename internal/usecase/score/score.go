package score

import (
	"context"
	"time"

	loandomain "peerlend-backend/internal/domain/loan"
	riskdomain "peerlend-backend/internal/domain/risk"
	"peerlend-backend/internal/domain/schedule"
)

// PaymentHistory is the timeliness picture across all of a borrower's loans.
// Late and Overdue are derived from paid_at/due_date comparisons, never from
// a stored flag.
type PaymentHistory struct {
	Early   int
	OnTime  int
	Late    int
	Overdue int
}

// Strategy converts payment history and open risk flags into a credit score.
// The production weighting function is not settled; keep implementations
// behind this interface so it can be swapped without touching callers.
type Strategy interface {
	Compute(h PaymentHistory, s riskdomain.Summary) int
}

// Baseline is a placeholder strategy: a 300–850 band anchored at 600,
// rewarded for early/on-time installments and penalized for lateness, open
// flags, and defaults. The weights are illustrative, not calibrated.
type Baseline struct{}

func (Baseline) Compute(h PaymentHistory, s riskdomain.Summary) int {
	v := 600
	v += 3 * h.Early
	v += 2 * h.OnTime
	v -= 5 * h.Late
	v -= 10 * h.Overdue
	v -= 25 * s.OpenTotal
	v -= 15 * s.DistinctReporters
	if s.HasDefaults {
		v -= 100
	}
	if v < 300 {
		v = 300
	}
	if v > 850 {
		v = 850
	}
	return v
}

type Usecase struct {
	loans     loandomain.Repository
	schedules schedule.Repository
	flags     riskdomain.Repository
	strategy  Strategy
}

func NewUsecase(loans loandomain.Repository, schedules schedule.Repository, flags riskdomain.Repository, strategy Strategy) *Usecase {
	if strategy == nil {
		strategy = Baseline{}
	}
	return &Usecase{loans: loans, schedules: schedules, flags: flags, strategy: strategy}
}

type ScoreDTO struct {
	BorrowerID string         `json:"borrower_id"`
	Score      int            `json:"score"`
	History    PaymentHistory `json:"history"`
}

func (u *Usecase) Score(ctx context.Context, borrowerID string) (*ScoreDTO, error) {
	loans, err := u.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var h PaymentHistory
	for _, l := range loans {
		insts, err := u.schedules.ListByLoanID(ctx, l.LoanID)
		if err != nil {
			return nil, err
		}
		h.Add(insts, now)
	}

	open, err := u.flags.ListUnresolvedByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	summary := riskdomain.Summarize(borrowerID, open)

	return &ScoreDTO{
		BorrowerID: borrowerID,
		Score:      u.strategy.Compute(h, summary),
		History:    h,
	}, nil
}

// Add classifies installments into the history buckets as of now.
func (h *PaymentHistory) Add(insts []*schedule.Installment, now time.Time) {
	for _, inst := range insts {
		switch {
		case inst.Status == schedule.StatusPaid && inst.IsEarlyPayment:
			h.Early++
		case inst.Status == schedule.StatusPaid && inst.PaidAt != nil && inst.PaidAt.After(inst.DueDate):
			h.Late++
		case inst.Status == schedule.StatusPaid:
			h.OnTime++
		case inst.DueDate.Before(now):
			h.Overdue++
		}
	}
}
