package proof

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proof) error
	GetByProofID(ctx context.Context, proofID string) (*Proof, error)
	// GetByProofIDForUpdate locks the proof row so a concurrent review of the
	// same proof blocks behind the state check.
	GetByProofIDForUpdate(ctx context.Context, proofID string) (*Proof, error)
	ListByLoanID(ctx context.Context, loanID string) ([]*Proof, error)
	Save(ctx context.Context, p *Proof) error
}
