package risk

import "context"

type Repository interface {
	Create(ctx context.Context, f *Flag) error
	GetByFlagID(ctx context.Context, flagID string) (*Flag, error)
	GetByFlagIDForUpdate(ctx context.Context, flagID string) (*Flag, error)
	// ListUnresolvedByBorrowerID backs the aggregate read; served by the
	// (borrower_id, resolved_at) index.
	ListUnresolvedByBorrowerID(ctx context.Context, borrowerID string) ([]*Flag, error)
	Save(ctx context.Context, f *Flag) error
}
