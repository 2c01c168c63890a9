package loan

import (
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/schedule"
)

type CreateOfferInput struct {
	BorrowerID       string
	LenderID         string
	PrincipalMinor   int64
	BaseRatePercent  float64
	ExtraRatePercent float64
	PaymentType      string
	InstallmentCount int
	Currency         string
}

type OfferDTO struct {
	OfferID          string     `json:"offer_id"`
	BorrowerID       string     `json:"borrower_id"`
	LenderID         string     `json:"lender_id"`
	PrincipalMinor   int64      `json:"principal_minor"`
	BaseRatePercent  float64    `json:"base_rate_percent"`
	ExtraRatePercent float64    `json:"extra_rate_percent"`
	TotalRatePercent float64    `json:"total_rate_percent"`
	TotalOwedMinor   int64      `json:"total_owed_minor"`
	PaymentType      string     `json:"payment_type"`
	InstallmentCount int        `json:"installment_count"`
	Currency         string     `json:"currency"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type InstallmentDTO struct {
	ScheduleID      string     `json:"schedule_id"`
	InstallmentNo   int        `json:"installment_no"`
	DueDate         time.Time  `json:"due_date"`
	AmountDueMinor  int64      `json:"amount_due_minor"`
	PaidAmountMinor int64      `json:"paid_amount_minor"`
	Status          string     `json:"status"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	IsEarlyPayment  bool       `json:"is_early_payment"`
}

type LoanDTO struct {
	LoanID           string           `json:"loan_id"`
	OfferID          string           `json:"offer_id"`
	BorrowerID       string           `json:"borrower_id"`
	LenderID         string           `json:"lender_id"`
	PrincipalMinor   int64            `json:"principal_minor"`
	TotalOwedMinor   int64            `json:"total_owed_minor"`
	TotalRepaidMinor int64            `json:"total_repaid_minor"`
	Currency         string           `json:"currency"`
	State            string           `json:"state"`
	DisbursedAt      *time.Time       `json:"disbursed_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	Schedule         []InstallmentDTO `json:"schedule,omitempty"`
}

func toOfferDTO(o *domain.Offer, totalRate float64, totalOwed int64) *OfferDTO {
	return &OfferDTO{
		OfferID:          o.OfferID,
		BorrowerID:       o.BorrowerID,
		LenderID:         o.LenderID,
		PrincipalMinor:   o.PrincipalMinor,
		BaseRatePercent:  o.BaseRateBps.Percent(),
		ExtraRatePercent: o.ExtraRateBps.Percent(),
		TotalRatePercent: totalRate,
		TotalOwedMinor:   totalOwed,
		PaymentType:      string(o.PaymentType),
		InstallmentCount: o.InstallmentCount,
		Currency:         o.Currency,
		AcceptedAt:       o.AcceptedAt,
		CreatedAt:        o.CreatedAt,
	}
}

func toLoanDTO(l *domain.Loan, insts []*schedule.Installment) *LoanDTO {
	dto := &LoanDTO{
		LoanID:           l.LoanID,
		OfferID:          l.OfferID,
		BorrowerID:       l.BorrowerID,
		LenderID:         l.LenderID,
		PrincipalMinor:   l.PrincipalMinor,
		TotalOwedMinor:   l.TotalOwedMinor,
		TotalRepaidMinor: l.TotalRepaidMinor,
		Currency:         l.Currency,
		State:            string(l.State),
		DisbursedAt:      l.DisbursedAt,
		CreatedAt:        l.CreatedAt,
	}
	for _, i := range insts {
		dto.Schedule = append(dto.Schedule, InstallmentDTO{
			ScheduleID:      i.ScheduleID,
			InstallmentNo:   i.InstallmentNo,
			DueDate:         i.DueDate,
			AmountDueMinor:  i.AmountDueMinor,
			PaidAmountMinor: i.PaidAmountMinor,
			Status:          string(i.Status),
			PaidAt:          i.PaidAt,
			IsEarlyPayment:  i.IsEarlyPayment,
		})
	}
	return dto
}
