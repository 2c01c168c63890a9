package money

import "testing"

func TestBpsFromPercent(t *testing.T) {
	tests := []struct {
		pct     float64
		want    Bps
		wantErr bool
	}{
		{30, 3000, false},
		{20, 2000, false},
		{2, 200, false},
		{22.75, 2275, false},
		{0, 0, false},
		{0.01, 1, false},
		{1.234, 0, true},  // 3 decimal places
		{-1, 0, true},     // negative
	}
	for _, tt := range tests {
		got, err := BpsFromPercent(tt.pct)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("BpsFromPercent(%v): want error", tt.pct)
			}
			continue
		}
		if err != nil {
			t.Fatalf("BpsFromPercent(%v): %v", tt.pct, err)
		}
		if got != tt.want {
			t.Fatalf("BpsFromPercent(%v) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}

func TestApplyBps(t *testing.T) {
	tests := []struct {
		amount int64
		r      Bps
		want   int64
	}{
		{10_000, 3000, 3_000},  // 30% of 10,000
		{10_000, 2600, 2_600},  // 26% of 10,000
		{100, 50, 1},           // 0.5% of 100 = 0.5 → rounds up
		{100, 49, 0},           // 0.49 → rounds down
		{0, 2500, 0},
		{1, 10000, 1},
	}
	for _, tt := range tests {
		if got := ApplyBps(tt.amount, tt.r); got != tt.want {
			t.Fatalf("ApplyBps(%d, %d) = %d, want %d", tt.amount, tt.r, got, tt.want)
		}
	}
}

func TestSplitEven_ExactSum(t *testing.T) {
	totals := []int64{12_600, 13_000, 10_001, 999_999, 7, 100}
	for _, total := range totals {
		for n := 1; n <= 60; n++ {
			per, last, err := SplitEven(total, n)
			if err != nil {
				// tiny totals over many installments legitimately fail:
				// rounding either overshoots the total or leaves an
				// installment with nothing due
				if total >= int64(n*n) {
					t.Fatalf("SplitEven(%d, %d): %v", total, n, err)
				}
				continue
			}
			if sum := per*int64(n-1) + last; sum != total {
				t.Fatalf("SplitEven(%d, %d): sum %d != total", total, n, sum)
			}
			if last < 0 || per < 0 {
				t.Fatalf("SplitEven(%d, %d): negative component per=%d last=%d", total, n, per, last)
			}
		}
	}
}

func TestSplitEven_KnownValues(t *testing.T) {
	per, last, err := SplitEven(12_600, 4)
	if err != nil {
		t.Fatal(err)
	}
	if per != 3_150 || last != 3_150 {
		t.Fatalf("per=%d last=%d, want 3150/3150", per, last)
	}

	per, last, err = SplitEven(10_000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if per != 3_333 || last != 3_334 {
		t.Fatalf("per=%d last=%d, want 3333/3334", per, last)
	}
}

func TestSplitEven_Invalid(t *testing.T) {
	if _, _, err := SplitEven(100, 0); err == nil {
		t.Fatal("want error for n=0")
	}
	if _, _, err := SplitEven(-1, 2); err == nil {
		t.Fatal("want error for negative total")
	}
}

// A split that would leave an installment with nothing due must be rejected:
// the zero-due row would stay pending forever and the loan could never
// complete.
func TestSplitEven_RejectsZeroInstallments(t *testing.T) {
	tests := []struct {
		total int64
		n     int
	}{
		{1, 2}, // per rounds up to 1, nothing left for the last
		{2, 3}, // half-up per=1, last would be 0
		{8, 5}, // half-up per=2, 2×4 consumes the whole total
		{1, 3}, // per itself would be 0
	}
	for _, tt := range tests {
		if _, _, err := SplitEven(tt.total, tt.n); err == nil {
			t.Fatalf("SplitEven(%d, %d): want error for zero installment", tt.total, tt.n)
		}
	}
}
