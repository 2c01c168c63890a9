package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type offerSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	OfferID          string         `gorm:"size:32;column:offer_id"`
	BorrowerID       string         `gorm:"size:32;column:borrower_id"`
	LenderID         string         `gorm:"size:32;column:lender_id"`
	PrincipalMinor   int64          `gorm:"column:principal_minor"`
	BaseRateBps      int64          `gorm:"column:base_rate_bps"`
	ExtraRateBps     int64          `gorm:"column:extra_rate_bps"`
	PaymentType      string         `gorm:"type:text;column:payment_type"`
	InstallmentCount int            `gorm:"column:installment_count"`
	Currency         string         `gorm:"column:currency"`
	AcceptedAt       *time.Time     `gorm:"column:accepted_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (offerSQLite) TableName() string { return "offers" }

type loanSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;column:loan_id"`
	OfferID          string         `gorm:"size:32;column:offer_id"`
	BorrowerID       string         `gorm:"size:32;column:borrower_id"`
	LenderID         string         `gorm:"size:32;column:lender_id"`
	CountryCode      string         `gorm:"column:country_code"`
	Currency         string         `gorm:"column:currency"`
	PrincipalMinor   int64          `gorm:"column:principal_minor"`
	TotalOwedMinor   int64          `gorm:"column:total_owed_minor"`
	TotalRepaidMinor int64          `gorm:"column:total_repaid_minor"`
	State            string         `gorm:"type:text;column:state"` // ← no enum
	BorrowerSignedAt *time.Time     `gorm:"column:borrower_signed_at"`
	LenderSignedAt   *time.Time     `gorm:"column:lender_signed_at"`
	DisbursedAt      *time.Time     `gorm:"column:disbursed_at"`
	StateUpdatedAt   time.Time      `gorm:"column:state_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type installmentSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id"`
	ScheduleID      string     `gorm:"size:32;column:schedule_id"`
	LoanID          string     `gorm:"size:32;column:loan_id"`
	InstallmentNo   int        `gorm:"column:installment_no"`
	DueDate         time.Time  `gorm:"column:due_date"`
	AmountDueMinor  int64      `gorm:"column:amount_due_minor"`
	PaidAmountMinor int64      `gorm:"column:paid_amount_minor"`
	Status          string     `gorm:"type:text;column:status"`
	PaidAt          *time.Time `gorm:"column:paid_at"`
	IsEarlyPayment  bool       `gorm:"column:is_early_payment"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (installmentSQLite) TableName() string { return "repayment_schedules" }

type repaymentEventSQLite struct {
	ID                 uint64    `gorm:"primaryKey;column:id"`
	EventID            string    `gorm:"size:32;column:event_id"`
	LoanID             string    `gorm:"size:32;column:loan_id"`
	ScheduleID         string    `gorm:"size:32;column:schedule_id"`
	AmountAppliedMinor int64     `gorm:"column:amount_applied_minor"`
	Method             string    `gorm:"column:method"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (repaymentEventSQLite) TableName() string { return "repayment_events" }

type proofSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	ProofID         string         `gorm:"size:32;column:proof_id"`
	LoanID          string         `gorm:"size:32;column:loan_id"`
	AmountMinor     int64          `gorm:"column:amount_minor"`
	PaymentDate     time.Time      `gorm:"column:payment_date"`
	Method          string         `gorm:"column:method"`
	Reference       string         `gorm:"column:reference"`
	AttachmentRef   string         `gorm:"column:attachment_ref"`
	Status          string         `gorm:"type:text;column:status"`
	RejectionReason string         `gorm:"column:rejection_reason"`
	ReviewedBy      string         `gorm:"column:reviewed_by"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (proofSQLite) TableName() string { return "payment_proofs" }

type riskFlagSQLite struct {
	ID               uint64     `gorm:"primaryKey;column:id"`
	FlagID           string     `gorm:"size:32;column:flag_id"`
	BorrowerID       string     `gorm:"size:32;column:borrower_id"`
	Type             string     `gorm:"type:text;column:type"`
	Origin           string     `gorm:"type:text;column:origin"`
	Reason           string     `gorm:"column:reason"`
	AmountMinor      *int64     `gorm:"column:amount_minor"`
	ProofHash        string     `gorm:"column:proof_hash"`
	CreatedBy        string     `gorm:"size:32;column:created_by"`
	ResolvedAt       *time.Time `gorm:"column:resolved_at"`
	ResolutionReason string     `gorm:"column:resolution_reason"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
}

func (riskFlagSQLite) TableName() string { return "risk_flags" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&offerSQLite{},
		&loanSQLite{},
		&installmentSQLite{},
		&repaymentEventSQLite{},
		&proofSQLite{},
		&riskFlagSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
