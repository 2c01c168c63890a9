package loan

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"peerlend-backend/internal/domain/event"
	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/risk"
	"peerlend-backend/internal/domain/schedule"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/fault"
	"peerlend-backend/pkg/id"
	"peerlend-backend/pkg/money"
)

type Usecase struct {
	offers    domain.OfferRepository
	loans     domain.Repository
	schedules schedule.Repository
	uow       uow.UnitOfWork
	pub       event.Publisher
}

func NewUsecase(offers domain.OfferRepository, loans domain.Repository, schedules schedule.Repository, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{offers: offers, loans: loans, schedules: schedules, uow: tx, pub: pub}
}

// CreateOffer validates the interest terms up front so a lender can never
// post an offer whose schedule could not be generated later.
func (u *Usecase) CreateOffer(ctx context.Context, in CreateOfferInput) (*OfferDTO, error) {
	baseRate, err := money.BpsFromPercent(in.BaseRatePercent)
	if err != nil {
		return nil, fault.Validationf("base rate: %v", err)
	}
	extraRate, err := money.BpsFromPercent(in.ExtraRatePercent)
	if err != nil {
		return nil, fault.Validationf("extra rate: %v", err)
	}
	pt := domain.PaymentType(in.PaymentType)

	terms, err := domain.ComputeTerms(in.PrincipalMinor, baseRate, extraRate, pt, in.InstallmentCount)
	if err != nil {
		return nil, err
	}

	o := &domain.Offer{
		OfferID:          id.NewID32(),
		BorrowerID:       in.BorrowerID,
		LenderID:         in.LenderID,
		PrincipalMinor:   in.PrincipalMinor,
		BaseRateBps:      baseRate,
		ExtraRateBps:     extraRate,
		PaymentType:      pt,
		InstallmentCount: in.InstallmentCount,
		Currency:         in.Currency,
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return toOfferDTO(o, terms.TotalRateBps.Percent(), terms.TotalOwedMinor), nil
}

func (u *Usecase) GetOffer(ctx context.Context, offerID string) (*OfferDTO, error) {
	o, err := u.offers.GetByOfferID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("offer %s not found", offerID)
		}
		return nil, err
	}
	terms, err := offerTerms(o)
	if err != nil {
		return nil, err
	}
	return toOfferDTO(o, terms.TotalRateBps.Percent(), terms.TotalOwedMinor), nil
}

// AcceptOffer turns the offer into a loan awaiting both signatures. The offer
// row is locked so two concurrent accepts cannot create two loans.
func (u *Usecase) AcceptOffer(ctx context.Context, offerID, borrowerID, countryCode string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Offers.GetByOfferIDForUpdate(ctx, offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFoundf("offer %s not found", offerID)
			}
			return err
		}
		if o.Accepted() {
			return fault.Conflictf("offer %s already accepted", offerID)
		}
		if o.BorrowerID != borrowerID {
			return fault.Conflictf("offer %s is not addressed to borrower %s", offerID, borrowerID)
		}

		terms, err := offerTerms(o)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		l := &domain.Loan{
			LoanID:         id.NewID32(),
			OfferID:        o.OfferID,
			BorrowerID:     o.BorrowerID,
			LenderID:       o.LenderID,
			CountryCode:    countryCode,
			Currency:       o.Currency,
			PrincipalMinor: o.PrincipalMinor,
			TotalOwedMinor: terms.TotalOwedMinor,
			State:          domain.StatePendingSignatures,
			StateUpdatedAt: now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		o.AcceptedAt = &now
		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}

		dto = toLoanDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("loan %s not found", loanID)
		}
		return nil, err
	}
	insts, err := u.schedules.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toLoanDTO(l, insts), nil
}

// Sign records one party's signature. Both signatures move the loan to
// pending_disbursement.
func (u *Usecase) Sign(ctx context.Context, loanID string, party domain.Party) (*LoanDTO, error) {
	if party != domain.PartyBorrower && party != domain.PartyLender {
		return nil, fault.Validationf("unknown signing party %q", party)
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StatePendingSignatures {
			return fault.Conflictf("loan %s is %s, signatures are closed", loanID, l.State)
		}
		now := time.Now().UTC()
		switch party {
		case domain.PartyBorrower:
			if l.BorrowerSignedAt != nil {
				return fault.Conflictf("borrower already signed loan %s", loanID)
			}
			l.BorrowerSignedAt = &now
		case domain.PartyLender:
			if l.LenderSignedAt != nil {
				return fault.Conflictf("lender already signed loan %s", loanID)
			}
			l.LenderSignedAt = &now
		}
		if l.FullySigned() {
			l.State = domain.StatePendingDisbursement
			l.StateUpdatedAt = now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toLoanDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Disburse activates the loan and generates its repayment schedule in the
// same transaction. Regeneration is forbidden: an existing schedule row for
// the loan makes this a conflict, whatever the loan state claims.
func (u *Usecase) Disburse(ctx context.Context, loanID string, at time.Time) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StatePendingDisbursement {
			return fault.Conflictf("loan %s is %s, not pending_disbursement", loanID, l.State)
		}
		n, err := r.Schedules.CountByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fault.Conflictf("loan %s already has a schedule", loanID)
		}

		o, err := r.Offers.GetByOfferID(ctx, l.OfferID)
		if err != nil {
			return err
		}
		terms, err := offerTerms(o)
		if err != nil {
			return err
		}

		insts := schedule.Generate(l.LoanID, terms, at)
		if err := r.Schedules.CreateBatch(ctx, insts); err != nil {
			return err
		}

		disbursedAt := at.UTC()
		l.DisbursedAt = &disbursedAt
		l.State = domain.StateActive
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toLoanDTO(l, insts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Cancel is only possible while signatures are still pending.
func (u *Usecase) Cancel(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StatePendingSignatures {
			return fault.Conflictf("loan %s is %s, cancellation window has closed", loanID, l.State)
		}
		l.State = domain.StateCancelled
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toLoanDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MarkDefaulted moves an active loan to defaulted and writes a system DEFAULT
// risk flag against the borrower in the same transaction.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID, reason, proofHash string) (*LoanDTO, error) {
	if reason == "" {
		return nil, fault.Validationf("default reason is required")
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StateActive {
			return fault.Conflictf("loan %s is %s, only active loans default", loanID, l.State)
		}
		l.State = domain.StateDefaulted
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		outstanding := l.TotalOwedMinor - l.TotalRepaidMinor
		if err := r.Flags.Create(ctx, &risk.Flag{
			FlagID:      id.NewID32(),
			BorrowerID:  l.BorrowerID,
			Type:        risk.TypeDefault,
			Origin:      risk.OriginSystemAuto,
			Reason:      reason,
			AmountMinor: &outstanding,
			ProofHash:   proofHash,
			CreatedBy:   "system",
		}); err != nil {
			return err
		}
		dto = toLoanDTO(l, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.pub != nil {
		if perr := u.pub.Publish(ctx, event.Event{
			Type:       event.TypeLoanDefaulted,
			LoanID:     loanID,
			BorrowerID: dto.BorrowerID,
			OccurredAt: time.Now().UTC(),
		}); perr != nil {
			log.Printf("publish loan.defaulted for %s: %v", loanID, perr)
		}
	}
	return dto, nil
}

// offerTerms recomputes the deterministic terms of a stored offer.
func offerTerms(o *domain.Offer) (domain.Terms, error) {
	terms, err := domain.ComputeTerms(o.PrincipalMinor, o.BaseRateBps, o.ExtraRateBps, o.PaymentType, o.InstallmentCount)
	if err != nil {
		// stored offers were validated at creation; failing here is a bug
		return domain.Terms{}, fault.Invariantf("offer %s has invalid stored terms: %v", o.OfferID, err)
	}
	return terms, nil
}
