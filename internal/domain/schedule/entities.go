package schedule

import (
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// Installment is one row of a loan's repayment schedule. Shape is immutable
// after generation; only paid_amount_minor, status, paid_at and
// is_early_payment mutate, and only through settlement.
type Installment struct {
	ID              uint64     `gorm:"primaryKey;column:id" json:"-"`
	ScheduleID      string     `gorm:"size:32;uniqueIndex:ux_schedule_schedule_id" json:"schedule_id"`
	LoanID          string     `gorm:"size:32;uniqueIndex:ux_schedule_loan_no,priority:1;index:idx_schedule_loan" json:"loan_id"`
	InstallmentNo   int        `gorm:"column:installment_no;uniqueIndex:ux_schedule_loan_no,priority:2" json:"installment_no"`
	DueDate         time.Time  `gorm:"column:due_date" json:"due_date"`
	AmountDueMinor  int64      `gorm:"column:amount_due_minor" json:"amount_due_minor"`
	PaidAmountMinor int64      `gorm:"column:paid_amount_minor" json:"paid_amount_minor"`
	Status          Status     `gorm:"type:enum('pending','partial','paid');default:'pending'" json:"status"`
	PaidAt          *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	IsEarlyPayment  bool       `gorm:"column:is_early_payment" json:"is_early_payment"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "repayment_schedules" }

// Deficit is the amount still needed to fully cover this installment.
func (i *Installment) Deficit() int64 { return i.AmountDueMinor - i.PaidAmountMinor }

// RepaymentEvent is the audit trail of settlement: one row per application of
// money to an installment. Never mutated or deleted.
type RepaymentEvent struct {
	ID                 uint64    `gorm:"primaryKey;column:id" json:"-"`
	EventID            string    `gorm:"size:32;uniqueIndex:ux_repayment_events_event_id" json:"event_id"`
	LoanID             string    `gorm:"size:32;index:idx_repayment_events_loan" json:"loan_id"`
	ScheduleID         string    `gorm:"size:32;index:idx_repayment_events_schedule" json:"schedule_id"`
	AmountAppliedMinor int64     `gorm:"column:amount_applied_minor" json:"amount_applied_minor"`
	Method             string    `gorm:"size:32" json:"method"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RepaymentEvent) TableName() string { return "repayment_events" }
