package proof

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodMobileMoney  Method = "mobile_money"
	MethodCash         Method = "cash"
	MethodOther        Method = "other"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodBankTransfer, MethodMobileMoney, MethodCash, MethodOther:
		return true
	}
	return false
}

// Proof is a borrower-submitted claim of an out-of-band payment. Approval and
// rejection are both terminal; a rejected proof stays as audit history and a
// new claim requires a new proof.
type Proof struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	ProofID         string         `gorm:"size:32;uniqueIndex:ux_proofs_proof_id" json:"proof_id"`
	LoanID          string         `gorm:"size:32;index:idx_proofs_loan" json:"loan_id"`
	AmountMinor     int64          `gorm:"column:amount_minor" json:"amount_minor"`
	PaymentDate     time.Time      `gorm:"column:payment_date" json:"payment_date"`
	Method          Method         `gorm:"size:32" json:"method"`
	Reference       string         `gorm:"size:128" json:"reference"`
	AttachmentRef   string         `gorm:"type:text" json:"attachment_ref"`
	Status          Status         `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedBy      string         `gorm:"size:32" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Proof) TableName() string { return "payment_proofs" }
