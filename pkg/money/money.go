package money

import (
	"errors"
	"fmt"
	"math"
)

// Amounts are integer minor units (e.g. cents). Rates are integer basis
// points so that interest math stays exact; 1% = 100 bps.
type Bps int64

var (
	ErrNegativeRate  = errors.New("rate must not be negative")
	ErrRatePrecision = errors.New("rate must have at most 2 decimal places")
)

// BpsFromPercent converts a percentage (e.g. 22.75) to basis points.
// More than 2 decimal places would silently lose precision, so it is rejected.
func BpsFromPercent(pct float64) (Bps, error) {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, fmt.Errorf("invalid rate %v", pct)
	}
	if pct < 0 {
		return 0, ErrNegativeRate
	}
	scaled := pct * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		return 0, ErrRatePrecision
	}
	return Bps(math.Round(scaled)), nil
}

// Percent renders the rate back as a percentage for read-side DTOs.
func (r Bps) Percent() float64 { return float64(r) / 100 }

// ApplyBps returns round(amount × r / 10000), half-up, in pure integer
// arithmetic. amount and r must be non-negative.
func ApplyBps(amount int64, r Bps) int64 {
	return (amount*int64(r) + 5000) / 10000
}

// SplitEven splits total across n installments: per = round(total/n) half-up,
// and the final installment absorbs the rounding remainder so that
// per×(n−1)+last == total exactly. Splits that would leave any installment
// with nothing due are rejected: a zero-due row could never flip to paid and
// would strand the obligation.
func SplitEven(total int64, n int) (per, last int64, err error) {
	if n < 1 {
		return 0, 0, fmt.Errorf("installment count %d: must be at least 1", n)
	}
	if total < 0 {
		return 0, 0, fmt.Errorf("total %d: must not be negative", total)
	}
	q, rem := total/int64(n), total%int64(n)
	per = q
	if 2*rem >= int64(n) {
		per = q + 1
	}
	last = total - per*int64(n-1)
	if per <= 0 || last <= 0 {
		return 0, 0, fmt.Errorf("total %d cannot be split across %d installments without a zero installment", total, n)
	}
	return per, last, nil
}
