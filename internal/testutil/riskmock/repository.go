package riskmock

import (
	"context"

	domain "peerlend-backend/internal/domain/risk"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                     func(ctx context.Context, f *domain.Flag) error
	GetByFlagIDFn                func(ctx context.Context, flagID string) (*domain.Flag, error)
	GetByFlagIDForUpdateFn       func(ctx context.Context, flagID string) (*domain.Flag, error)
	ListUnresolvedByBorrowerIDFn func(ctx context.Context, borrowerID string) ([]*domain.Flag, error)
	SaveFn                       func(ctx context.Context, f *domain.Flag) error
}

func (m *Repo) Create(ctx context.Context, f *domain.Flag) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) GetByFlagID(ctx context.Context, flagID string) (*domain.Flag, error) {
	if m.GetByFlagIDFn != nil {
		return m.GetByFlagIDFn(ctx, flagID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByFlagIDForUpdate(ctx context.Context, flagID string) (*domain.Flag, error) {
	if m.GetByFlagIDForUpdateFn != nil {
		return m.GetByFlagIDForUpdateFn(ctx, flagID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListUnresolvedByBorrowerID(ctx context.Context, borrowerID string) ([]*domain.Flag, error) {
	if m.ListUnresolvedByBorrowerIDFn != nil {
		return m.ListUnresolvedByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, f *domain.Flag) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, f)
	}
	return nil
}
