package event

import (
	"context"
	"time"
)

type Type string

const (
	TypeLoanCompleted Type = "loan.completed"
	TypeLoanDefaulted Type = "loan.defaulted"
	TypeProofApproved Type = "proof.approved"
	TypeProofRejected Type = "proof.rejected"
	TypeRiskFlagged   Type = "risk.flagged"
)

// Event is what the engine hands to the external notifier. It carries
// identifiers only; message formatting and delivery are not this engine's job.
type Event struct {
	Type       Type      `json:"type"`
	LoanID     string    `json:"loan_id,omitempty"`
	BorrowerID string    `json:"borrower_id,omitempty"`
	RefID      string    `json:"ref_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}
