package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	domain "peerlend-backend/internal/domain/proof"
	"peerlend-backend/pkg/id"
)

func makeProof(proofID, loanID string) *domain.Proof {
	return &domain.Proof{
		ProofID:     proofID,
		LoanID:      loanID,
		AmountMinor: 3150,
		PaymentDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Method:      domain.MethodMobileMoney,
		Reference:   "MM-20260210-001",
		Status:      domain.StatusPending,
	}
}

func TestProofCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	proofID := id.NewID32()
	p := makeProof(proofID, id.NewID32())
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByProofID(ctx, proofID)
	if err != nil {
		t.Fatalf("GetByProofID: %v", err)
	}
	if got.Status != domain.StatusPending || got.Method != domain.MethodMobileMoney {
		t.Errorf("unexpected proof: %+v", got)
	}
}

func TestProofSaveReviewDecision(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	proofID := id.NewID32()
	p := makeProof(proofID, id.NewID32())
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	p.Status = domain.StatusRejected
	p.RejectionReason = "amount does not match bank statement"
	p.ReviewedBy = id.NewID32()
	p.ReviewedAt = &now
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByProofIDForUpdate(ctx, proofID)
	if err != nil {
		t.Fatalf("GetByProofIDForUpdate: %v", err)
	}
	if got.Status != domain.StatusRejected || got.ReviewedAt == nil || got.RejectionReason == "" {
		t.Errorf("review decision not persisted: %+v", got)
	}
}

func TestProofGetByProofID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	_, err := repo.GetByProofID(ctx, "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestProofListByLoanID_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	first := makeProof(id.NewID32(), loanID)
	second := makeProof(id.NewID32(), loanID)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 proofs, got %d", len(got))
	}
	if got[0].ProofID != second.ProofID {
		t.Errorf("expected newest proof first, got %+v", got[0])
	}
}
