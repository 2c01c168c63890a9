package schedulemock

import (
	"context"

	domain "peerlend-backend/internal/domain/schedule"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateBatchFn              func(ctx context.Context, batch []*domain.Installment) error
	ListByLoanIDFn             func(ctx context.Context, loanID string) ([]*domain.Installment, error)
	ListOutstandingForUpdateFn func(ctx context.Context, loanID string) ([]*domain.Installment, error)
	CountByLoanIDFn            func(ctx context.Context, loanID string) (int64, error)
	SaveFn                     func(ctx context.Context, i *domain.Installment) error
}

func (m *Repo) CreateBatch(ctx context.Context, batch []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, batch)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOutstandingForUpdate(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	if m.ListOutstandingForUpdateFn != nil {
		return m.ListOutstandingForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByLoanID(ctx context.Context, loanID string) (int64, error) {
	if m.CountByLoanIDFn != nil {
		return m.CountByLoanIDFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, i *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

// EventRepo mocks domain.EventRepository.
type EventRepo struct {
	CreateFn       func(ctx context.Context, e *domain.RepaymentEvent) error
	ListByLoanIDFn func(ctx context.Context, loanID string) ([]*domain.RepaymentEvent, error)
}

func (m *EventRepo) Create(ctx context.Context, e *domain.RepaymentEvent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *EventRepo) ListByLoanID(ctx context.Context, loanID string) ([]*domain.RepaymentEvent, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
