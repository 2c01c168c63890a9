package loan

import (
	"time"

	"gorm.io/gorm"

	"peerlend-backend/pkg/money"
)

type State string

const (
	StatePendingSignatures   State = "pending_signatures"
	StatePendingDisbursement State = "pending_disbursement"
	StateActive              State = "active"
	StateCompleted           State = "completed"
	StateDefaulted           State = "defaulted"
	StateCancelled           State = "cancelled"
)

type PaymentType string

const (
	PaymentOnceOff      PaymentType = "once_off"
	PaymentInstallments PaymentType = "installments"
)

type Party string

const (
	PartyBorrower Party = "borrower"
	PartyLender   Party = "lender"
)

// Offer is a lender's interest-bearing proposal against a borrower's request.
// Immutable once accepted.
type Offer struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	OfferID          string         `gorm:"size:32;uniqueIndex:ux_offers_offer_id" json:"offer_id"`
	BorrowerID       string         `gorm:"size:32;index:idx_offers_borrower" json:"borrower_id"`
	LenderID         string         `gorm:"size:32;index:idx_offers_lender" json:"lender_id"`
	PrincipalMinor   int64          `gorm:"column:principal_minor" json:"principal_minor"`
	BaseRateBps      money.Bps      `gorm:"column:base_rate_bps" json:"base_rate_bps"`
	ExtraRateBps     money.Bps      `gorm:"column:extra_rate_bps" json:"extra_rate_bps"`
	PaymentType      PaymentType    `gorm:"type:enum('once_off','installments');column:payment_type" json:"payment_type"`
	InstallmentCount int            `gorm:"column:installment_count" json:"installment_count"`
	Currency         string         `gorm:"size:3" json:"currency"`
	AcceptedAt       *time.Time     `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Offer) TableName() string { return "offers" }

func (o *Offer) Accepted() bool { return o.AcceptedAt != nil }

// Loan is created from an accepted offer. Both parties must sign before
// disbursement; state transitions are monotonic except cancellation while
// signatures are still pending.
type Loan struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	OfferID          string         `gorm:"size:32;uniqueIndex:ux_loans_offer_id" json:"offer_id"`
	BorrowerID       string         `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	LenderID         string         `gorm:"size:32;index:idx_loans_lender" json:"lender_id"`
	CountryCode      string         `gorm:"size:2" json:"country_code"`
	Currency         string         `gorm:"size:3" json:"currency"`
	PrincipalMinor   int64          `gorm:"column:principal_minor" json:"principal_minor"`
	TotalOwedMinor   int64          `gorm:"column:total_owed_minor" json:"total_owed_minor"`
	TotalRepaidMinor int64          `gorm:"column:total_repaid_minor" json:"total_repaid_minor"`
	State            State          `gorm:"type:enum('pending_signatures','pending_disbursement','active','completed','defaulted','cancelled');default:'pending_signatures'" json:"state"`
	BorrowerSignedAt *time.Time     `gorm:"column:borrower_signed_at" json:"borrower_signed_at,omitempty"`
	LenderSignedAt   *time.Time     `gorm:"column:lender_signed_at" json:"lender_signed_at,omitempty"`
	DisbursedAt      *time.Time     `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	StateUpdatedAt   time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) FullySigned() bool { return l.BorrowerSignedAt != nil && l.LenderSignedAt != nil }
