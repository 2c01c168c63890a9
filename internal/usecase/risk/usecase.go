package risk

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"peerlend-backend/internal/domain/event"
	domain "peerlend-backend/internal/domain/risk"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/fault"
	"peerlend-backend/pkg/id"
)

type Usecase struct {
	flags domain.Repository
	uow   uow.UnitOfWork
	pub   event.Publisher
}

func NewUsecase(flags domain.Repository, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{flags: flags, uow: tx, pub: pub}
}

type FlagInput struct {
	BorrowerID  string
	Type        string
	Origin      string
	Reason      string
	AmountMinor *int64
	ProofHash   string
	ReporterID  string
}

// Flag appends a delinquency report. Flags are never merged; every lender's
// report stands on its own and aggregation happens at read time.
func (u *Usecase) Flag(ctx context.Context, in FlagInput) (*domain.Flag, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fault.Validationf("flag reason is required")
	}
	if strings.TrimSpace(in.ProofHash) == "" {
		return nil, fault.Validationf("proof hash is required")
	}
	ft := domain.FlagType(in.Type)
	if !domain.ValidFlagType(ft) {
		return nil, fault.Validationf("unknown flag type %q", in.Type)
	}
	origin := domain.Origin(in.Origin)
	if origin == "" {
		origin = domain.OriginLenderReported
	}
	if origin != domain.OriginLenderReported && origin != domain.OriginSystemAuto {
		return nil, fault.Validationf("unknown flag origin %q", in.Origin)
	}

	f := &domain.Flag{
		FlagID:      id.NewID32(),
		BorrowerID:  in.BorrowerID,
		Type:        ft,
		Origin:      origin,
		Reason:      in.Reason,
		AmountMinor: in.AmountMinor,
		ProofHash:   in.ProofHash,
		CreatedBy:   in.ReporterID,
	}
	if err := u.flags.Create(ctx, f); err != nil {
		return nil, err
	}

	if u.pub != nil {
		if perr := u.pub.Publish(ctx, event.Event{
			Type:       event.TypeRiskFlagged,
			BorrowerID: in.BorrowerID,
			RefID:      f.FlagID,
			OccurredAt: time.Now().UTC(),
		}); perr != nil {
			log.Printf("publish risk.flagged for %s: %v", in.BorrowerID, perr)
		}
	}
	return f, nil
}

// Resolve closes a flag. Resolving an already-resolved flag is an error, not
// a no-op, so the audit trail stays unambiguous.
func (u *Usecase) Resolve(ctx context.Context, flagID, reason string) (*domain.Flag, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fault.Validationf("resolution reason is required")
	}
	var out *domain.Flag
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Flags.GetByFlagIDForUpdate(ctx, flagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFoundf("flag %s not found", flagID)
			}
			return err
		}
		if f.Resolved() {
			return fault.Conflictf("flag %s already resolved", flagID)
		}
		now := time.Now().UTC()
		f.ResolvedAt = &now
		f.ResolutionReason = reason
		if err := r.Flags.Save(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Summary is a pure read projection over unresolved flags.
func (u *Usecase) Summary(ctx context.Context, borrowerID string) (domain.Summary, error) {
	open, err := u.flags.ListUnresolvedByBorrowerID(ctx, borrowerID)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(borrowerID, open), nil
}
