package proof

import (
	"time"

	domain "peerlend-backend/internal/domain/proof"
	"peerlend-backend/internal/usecase/settlement"
)

type SubmitInput struct {
	LoanID        string
	AmountMinor   int64
	PaymentDate   time.Time
	Method        string
	Reference     string
	AttachmentRef string
}

type ProofDTO struct {
	ProofID         string             `json:"proof_id"`
	LoanID          string             `json:"loan_id"`
	AmountMinor     int64              `json:"amount_minor"`
	PaymentDate     time.Time          `json:"payment_date"`
	Method          string             `json:"method"`
	Reference       string             `json:"reference,omitempty"`
	AttachmentRef   string             `json:"attachment_ref,omitempty"`
	Status          string             `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	ReviewedBy      string             `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	Settlement      *settlement.Result `json:"settlement,omitempty"`
}

func toDTO(p *domain.Proof, res *settlement.Result) *ProofDTO {
	return &ProofDTO{
		ProofID:         p.ProofID,
		LoanID:          p.LoanID,
		AmountMinor:     p.AmountMinor,
		PaymentDate:     p.PaymentDate,
		Method:          string(p.Method),
		Reference:       p.Reference,
		AttachmentRef:   p.AttachmentRef,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ReviewedBy:      p.ReviewedBy,
		ReviewedAt:      p.ReviewedAt,
		CreatedAt:       p.CreatedAt,
		Settlement:      res,
	}
}
