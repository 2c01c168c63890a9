package proof

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"peerlend-backend/internal/domain/event"
	domainLoan "peerlend-backend/internal/domain/loan"
	domainProof "peerlend-backend/internal/domain/proof"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/usecase/settlement"
	"peerlend-backend/pkg/fault"
	"peerlend-backend/pkg/id"
)

type Usecase struct {
	proofs domainProof.Repository
	loans  domainLoan.Repository
	uow    uow.UnitOfWork
	pub    event.Publisher
}

func NewUsecase(proofs domainProof.Repository, loans domainLoan.Repository, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{proofs: proofs, loans: loans, uow: tx, pub: pub}
}

// Submit records a borrower's claim of an out-of-band payment. It has no
// effect on the loan until a lender reviews it.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ProofDTO, error) {
	if in.AmountMinor <= 0 {
		return nil, fault.Validationf("proof amount must be positive, got %d", in.AmountMinor)
	}
	if in.PaymentDate.After(time.Now().UTC()) {
		return nil, fault.Validationf("payment date must not be in the future")
	}
	if !domainProof.ValidMethod(domainProof.Method(in.Method)) {
		return nil, fault.Validationf("unknown payment method %q", in.Method)
	}

	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("loan %s not found", in.LoanID)
		}
		return nil, err
	}
	if l.State != domainLoan.StateActive {
		return nil, fault.Conflictf("loan %s is %s, proofs need an active loan", in.LoanID, l.State)
	}

	p := &domainProof.Proof{
		ProofID:       id.NewID32(),
		LoanID:        in.LoanID,
		AmountMinor:   in.AmountMinor,
		PaymentDate:   in.PaymentDate.UTC(),
		Method:        domainProof.Method(in.Method),
		Reference:     in.Reference,
		AttachmentRef: in.AttachmentRef,
		Status:        domainProof.StatusPending,
	}
	if err := u.proofs.Create(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p, nil), nil
}

func (u *Usecase) Get(ctx context.Context, proofID string) (*ProofDTO, error) {
	p, err := u.proofs.GetByProofID(ctx, proofID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("proof %s not found", proofID)
		}
		return nil, err
	}
	return toDTO(p, nil), nil
}

// Approve flips the proof to approved and settles the claimed amount through
// the same engine a direct lender-recorded payment uses, all in one
// transaction. The proof's own pending check under lock is what makes a
// second approval a state conflict instead of a double settlement.
func (u *Usecase) Approve(ctx context.Context, proofID, reviewerID string) (*ProofDTO, error) {
	var (
		dto      *ProofDTO
		borrower string
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Proofs.GetByProofIDForUpdate(ctx, proofID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFoundf("proof %s not found", proofID)
			}
			return err
		}
		if p.Status != domainProof.StatusPending {
			return fault.Conflictf("proof %s already %s", proofID, p.Status)
		}

		l, err := r.Loans.GetByLoanIDForUpdate(ctx, p.LoanID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		p.Status = domainProof.StatusApproved
		p.ReviewedBy = reviewerID
		p.ReviewedAt = &now
		if err := r.Proofs.Save(ctx, p); err != nil {
			return err
		}

		res, err := settlement.Apply(ctx, r, l, p.AmountMinor, p.PaymentDate, string(p.Method))
		if err != nil {
			return err
		}

		borrower = l.BorrowerID
		dto = toDTO(p, &res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, event.TypeProofApproved, dto.LoanID, borrower, proofID)
	if dto.Settlement != nil && dto.Settlement.LoanCompleted {
		u.publish(ctx, event.TypeLoanCompleted, dto.LoanID, borrower, "")
	}
	return dto, nil
}

// Reject is terminal and requires a reason; the proof remains as audit
// history and the borrower must submit a new one.
func (u *Usecase) Reject(ctx context.Context, proofID, reviewerID, reason string) (*ProofDTO, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fault.Validationf("rejection reason is required")
	}

	var (
		dto      *ProofDTO
		borrower string
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Proofs.GetByProofIDForUpdate(ctx, proofID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFoundf("proof %s not found", proofID)
			}
			return err
		}
		if p.Status != domainProof.StatusPending {
			return fault.Conflictf("proof %s already %s", proofID, p.Status)
		}

		now := time.Now().UTC()
		p.Status = domainProof.StatusRejected
		p.RejectionReason = reason
		p.ReviewedBy = reviewerID
		p.ReviewedAt = &now
		if err := r.Proofs.Save(ctx, p); err != nil {
			return err
		}

		if l, lerr := r.Loans.GetByLoanID(ctx, p.LoanID); lerr == nil {
			borrower = l.BorrowerID
		}
		dto = toDTO(p, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, event.TypeProofRejected, dto.LoanID, borrower, proofID)
	return dto, nil
}

func (u *Usecase) publish(ctx context.Context, t event.Type, loanID, borrowerID, refID string) {
	if u.pub == nil {
		return
	}
	if err := u.pub.Publish(ctx, event.Event{
		Type:       t,
		LoanID:     loanID,
		BorrowerID: borrowerID,
		RefID:      refID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("publish %s for %s: %v", t, loanID, err)
	}
}
