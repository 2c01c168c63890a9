package schedule

import (
	"time"

	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/pkg/id"
)

// Generate builds the full repayment schedule for a loan: one installment per
// calendar month after start, amounts from the computed terms. The caller is
// responsible for persisting the records atomically with the loan's
// transition to active, exactly once per loan.
func Generate(loanID string, t loan.Terms, start time.Time) []*Installment {
	out := make([]*Installment, 0, t.InstallmentCount)
	for n := 1; n <= t.InstallmentCount; n++ {
		out = append(out, &Installment{
			ScheduleID:     id.NewID32(),
			LoanID:         loanID,
			InstallmentNo:  n,
			DueDate:        start.AddDate(0, n, 0),
			AmountDueMinor: t.InstallmentAmount(n),
			Status:         StatusPending,
		})
	}
	return out
}
