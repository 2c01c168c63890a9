package proofmock

import (
	"context"

	domain "peerlend-backend/internal/domain/proof"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, p *domain.Proof) error
	GetByProofIDFn          func(ctx context.Context, proofID string) (*domain.Proof, error)
	GetByProofIDForUpdateFn func(ctx context.Context, proofID string) (*domain.Proof, error)
	ListByLoanIDFn          func(ctx context.Context, loanID string) ([]*domain.Proof, error)
	SaveFn                  func(ctx context.Context, p *domain.Proof) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Proof) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProofID(ctx context.Context, proofID string) (*domain.Proof, error) {
	if m.GetByProofIDFn != nil {
		return m.GetByProofIDFn(ctx, proofID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByProofIDForUpdate(ctx context.Context, proofID string) (*domain.Proof, error) {
	if m.GetByProofIDForUpdateFn != nil {
		return m.GetByProofIDForUpdateFn(ctx, proofID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]*domain.Proof, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.Proof) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
