package settlement

import (
	"context"
	"testing"
	"time"

	loandomain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/event"
	"peerlend-backend/internal/domain/schedule"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/testutil/eventmock"
	"peerlend-backend/internal/testutil/loanmock"
	"peerlend-backend/internal/testutil/schedulemock"
	"peerlend-backend/internal/testutil/uowmock"
	"peerlend-backend/pkg/fault"
)

// fixture: an active 4×3,150 loan (principal 10,000, 26% total) plus mocks
// that hold state in memory so settlements are observable.
type fixture struct {
	loan    *loandomain.Loan
	insts   []*schedule.Installment
	events  []*schedule.RepaymentEvent
	pub     *eventmock.Publisher
	usecase *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	terms, err := loandomain.ComputeTerms(10_000, 2000, 200, loandomain.PaymentInstallments, 4)
	if err != nil {
		t.Fatalf("ComputeTerms: %v", err)
	}

	f := &fixture{
		loan: &loandomain.Loan{
			LoanID:         "ln00000000000000000000000000000a",
			BorrowerID:     "bw00000000000000000000000000000a",
			State:          loandomain.StateActive,
			PrincipalMinor: 10_000,
			TotalOwedMinor: terms.TotalOwedMinor,
		},
		insts: schedule.Generate("ln00000000000000000000000000000a", terms, start),
		pub:   &eventmock.Publisher{},
	}

	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*loandomain.Loan, error) {
			if loanID != f.loan.LoanID {
				return nil, fault.NotFoundf("loan %s not found", loanID)
			}
			return f.loan, nil
		},
		SaveFn: func(ctx context.Context, l *loandomain.Loan) error { return nil },
	}
	scheds := &schedulemock.Repo{
		ListOutstandingForUpdateFn: func(ctx context.Context, loanID string) ([]*schedule.Installment, error) {
			var out []*schedule.Installment
			for _, i := range f.insts {
				if i.Status != schedule.StatusPaid {
					out = append(out, i)
				}
			}
			return out, nil
		},
		SaveFn: func(ctx context.Context, i *schedule.Installment) error { return nil },
	}
	events := &schedulemock.EventRepo{
		CreateFn: func(ctx context.Context, e *schedule.RepaymentEvent) error {
			f.events = append(f.events, e)
			return nil
		},
	}

	f.usecase = NewUsecase(uowmock.Passthrough(uow.Repos{
		Loans:     loans,
		Schedules: scheds,
		Events:    events,
	}), f.pub)
	return f
}

func (f *fixture) statuses() []schedule.Status {
	out := make([]schedule.Status, len(f.insts))
	for i, inst := range f.insts {
		out[i] = inst.Status
	}
	return out
}

func TestApplyPayment_SingleInstallment(t *testing.T) {
	// paying exactly one installment settles #1 and leaves #2–4 pending
	f := newFixture(t)
	paidAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	res, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 3_150, paidAt, "bank_transfer")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if res.SchedulesPaid != 1 || res.OverpaymentMinor != 0 || res.LoanCompleted {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []schedule.Status{schedule.StatusPaid, schedule.StatusPending, schedule.StatusPending, schedule.StatusPending}
	for i, s := range f.statuses() {
		if s != want[i] {
			t.Fatalf("installment %d status %s, want %s", i+1, s, want[i])
		}
	}
	if f.loan.TotalRepaidMinor != 3_150 {
		t.Fatalf("total_repaid = %d, want 3150", f.loan.TotalRepaidMinor)
	}
	if len(f.events) != 1 || f.events[0].AmountAppliedMinor != 3_150 {
		t.Fatalf("events: %+v", f.events)
	}
}

func TestApplyPayment_TwoInstallmentsFIFO(t *testing.T) {
	// 6,300 in one call settles #1 and #2; #3 and #4 untouched
	f := newFixture(t)
	paidAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	res, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 6_300, paidAt, "bank_transfer")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if res.SchedulesPaid != 2 || res.OverpaymentMinor != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []schedule.Status{schedule.StatusPaid, schedule.StatusPaid, schedule.StatusPending, schedule.StatusPending}
	for i, s := range f.statuses() {
		if s != want[i] {
			t.Fatalf("installment %d status %s, want %s", i+1, s, want[i])
		}
	}
	if len(f.events) != 2 {
		t.Fatalf("want 2 repayment events, got %d", len(f.events))
	}
}

func TestApplyPayment_PartialThenResume(t *testing.T) {
	f := newFixture(t)
	paidAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	res, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 1_000, paidAt, "cash")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if res.SchedulesPaid != 0 {
		t.Fatalf("schedules_paid = %d, want 0", res.SchedulesPaid)
	}
	if f.insts[0].Status != schedule.StatusPartial || f.insts[0].PaidAmountMinor != 1_000 {
		t.Fatalf("installment 1: %+v", f.insts[0])
	}
	if f.insts[0].PaidAt != nil {
		t.Fatal("partial installment must not carry paid_at")
	}

	// the rest of the deficit settles it, then spills into #2
	res, err = f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 2_650, paidAt, "cash")
	if err != nil {
		t.Fatalf("second ApplyPayment: %v", err)
	}
	if res.SchedulesPaid != 1 {
		t.Fatalf("schedules_paid = %d, want 1", res.SchedulesPaid)
	}
	if f.insts[0].Status != schedule.StatusPaid {
		t.Fatalf("installment 1 status %s", f.insts[0].Status)
	}
	if f.insts[1].Status != schedule.StatusPartial || f.insts[1].PaidAmountMinor != 500 {
		t.Fatalf("installment 2: %+v", f.insts[1])
	}
	if f.loan.TotalRepaidMinor != 3_650 {
		t.Fatalf("total_repaid = %d, want 3650", f.loan.TotalRepaidMinor)
	}
}

func TestApplyPayment_OverpaymentRollover(t *testing.T) {
	// more than the whole remaining obligation: everything paid, leftover
	// returned, never discarded
	f := newFixture(t)
	paidAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	res, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 13_000, paidAt, "bank_transfer")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if res.SchedulesPaid != 4 || !res.LoanCompleted {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.OverpaymentMinor != 13_000-12_600 {
		t.Fatalf("overpayment = %d, want 400", res.OverpaymentMinor)
	}
	if f.loan.State != loandomain.StateCompleted {
		t.Fatalf("loan state %s, want completed", f.loan.State)
	}
	if f.loan.TotalRepaidMinor != 12_600 {
		t.Fatalf("total_repaid = %d, want 12600 (overpayment excluded)", f.loan.TotalRepaidMinor)
	}

	evs := f.pub.Events()
	if len(evs) != 1 || evs[0].Type != event.TypeLoanCompleted {
		t.Fatalf("published events: %+v", evs)
	}
}

func TestApplyPayment_ExactPayoffCompletes(t *testing.T) {
	f := newFixture(t)
	paidAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	res, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 12_600, paidAt, "bank_transfer")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if !res.LoanCompleted || res.OverpaymentMinor != 0 || res.SchedulesPaid != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestApplyPayment_EarlyLateClassification(t *testing.T) {
	f := newFixture(t)

	// before the first due date (Feb 10) → early
	early := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	if _, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 3_150, early, "cash"); err != nil {
		t.Fatal(err)
	}
	if !f.insts[0].IsEarlyPayment {
		t.Fatal("payment before due date must be early")
	}

	// after the second due date (Mar 10) → not early; lateness is derivable
	// from paid_at vs due_date alone
	late := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if _, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 3_150, late, "cash"); err != nil {
		t.Fatal(err)
	}
	inst := f.insts[1]
	if inst.IsEarlyPayment {
		t.Fatal("payment after due date must not be early")
	}
	if inst.PaidAt == nil || !inst.PaidAt.After(inst.DueDate) {
		t.Fatalf("lateness not derivable: paid_at=%v due=%v", inst.PaidAt, inst.DueDate)
	}
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	for _, amount := range []int64{0, -100} {
		_, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, amount, time.Now().UTC(), "cash")
		if !fault.IsValidation(err) {
			t.Fatalf("amount %d: want validation fault, got %v", amount, err)
		}
	}
	if len(f.events) != 0 {
		t.Fatal("rejected payment must not emit events")
	}
}

func TestApplyPayment_NothingOutstanding(t *testing.T) {
	f := newFixture(t)
	paidAt := time.Now().UTC()
	if _, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 12_600, paidAt, "cash"); err != nil {
		t.Fatal(err)
	}
	// loan is now completed; a further payment is a state conflict
	_, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 100, paidAt, "cash")
	if !fault.IsConflict(err) {
		t.Fatalf("want conflict fault, got %v", err)
	}
}

func TestApplyPayment_InactiveLoan(t *testing.T) {
	f := newFixture(t)
	f.loan.State = loandomain.StatePendingDisbursement
	_, err := f.usecase.ApplyPayment(context.Background(), f.loan.LoanID, 3_150, time.Now().UTC(), "cash")
	if !fault.IsConflict(err) {
		t.Fatalf("want conflict fault, got %v", err)
	}
}
