package loan

import (
	"peerlend-backend/pkg/fault"
	"peerlend-backend/pkg/money"
)

// Terms is the computed repayment picture of an offer. Rates are simple, not
// compounding: the total rate grows linearly with each installment beyond the
// first.
type Terms struct {
	TotalRateBps         money.Bps
	InterestMinor        int64
	TotalOwedMinor       int64
	PerInstallmentMinor  int64
	LastInstallmentMinor int64
	InstallmentCount     int
}

// ComputeTerms converts an offer's interest terms into the amounts owed.
// The last installment absorbs any rounding remainder so that the installment
// amounts always sum to TotalOwedMinor exactly.
func ComputeTerms(principalMinor int64, baseRate, extraRate money.Bps, pt PaymentType, installments int) (Terms, error) {
	if principalMinor <= 0 {
		return Terms{}, fault.Validationf("principal must be positive, got %d", principalMinor)
	}
	if baseRate < 0 || extraRate < 0 {
		return Terms{}, fault.Validationf("rates must not be negative")
	}
	if installments < 1 {
		return Terms{}, fault.Validationf("installment count must be at least 1, got %d", installments)
	}

	var totalRate money.Bps
	switch pt {
	case PaymentOnceOff:
		if installments != 1 {
			return Terms{}, fault.Validationf("once_off payment requires exactly 1 installment, got %d", installments)
		}
		totalRate = baseRate
	case PaymentInstallments:
		totalRate = baseRate + extraRate*money.Bps(installments-1)
	default:
		return Terms{}, fault.Validationf("unknown payment type %q", pt)
	}

	interest := money.ApplyBps(principalMinor, totalRate)
	totalOwed := principalMinor + interest
	per, last, err := money.SplitEven(totalOwed, installments)
	if err != nil {
		return Terms{}, fault.Validationf("split total across installments: %v", err)
	}

	return Terms{
		TotalRateBps:         totalRate,
		InterestMinor:        interest,
		TotalOwedMinor:       totalOwed,
		PerInstallmentMinor:  per,
		LastInstallmentMinor: last,
		InstallmentCount:     installments,
	}, nil
}

// InstallmentAmount returns the amount due for the 1-based installment n.
func (t Terms) InstallmentAmount(n int) int64 {
	if n == t.InstallmentCount {
		return t.LastInstallmentMinor
	}
	return t.PerInstallmentMinor
}
