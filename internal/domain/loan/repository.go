package loan

import "context"

type OfferRepository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	// GetByOfferIDForUpdate locks the offer row for the current transaction.
	GetByOfferIDForUpdate(ctx context.Context, offerID string) (*Offer, error)
	Save(ctx context.Context, o *Offer) error
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the current transaction;
	// every settlement path must go through it.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]*Loan, error)
	Save(ctx context.Context, l *Loan) error
}
