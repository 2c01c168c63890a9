package schedule

import "context"

type Repository interface {
	// CreateBatch inserts a freshly generated schedule in one statement.
	CreateBatch(ctx context.Context, batch []*Installment) error
	ListByLoanID(ctx context.Context, loanID string) ([]*Installment, error)
	// ListOutstandingForUpdate returns pending/partial installments ordered by
	// installment_no, locked for the current transaction.
	ListOutstandingForUpdate(ctx context.Context, loanID string) ([]*Installment, error)
	CountByLoanID(ctx context.Context, loanID string) (int64, error)
	Save(ctx context.Context, i *Installment) error
}

type EventRepository interface {
	Create(ctx context.Context, e *RepaymentEvent) error
	ListByLoanID(ctx context.Context, loanID string) ([]*RepaymentEvent, error)
}
