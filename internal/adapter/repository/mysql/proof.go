package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	proofDomain "peerlend-backend/internal/domain/proof"
)

type ProofRepository struct{ db *gorm.DB }

func NewProofRepository(db *gorm.DB) *ProofRepository { return &ProofRepository{db: db} }

func (r *ProofRepository) Create(ctx context.Context, p *proofDomain.Proof) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProofRepository) Save(ctx context.Context, p *proofDomain.Proof) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProofRepository) GetByProofID(ctx context.Context, proofID string) (*proofDomain.Proof, error) {
	var out proofDomain.Proof
	res := r.db.WithContext(ctx).Where("proof_id = ?", proofID).First(&out)
	return &out, res.Error
}

func (r *ProofRepository) GetByProofIDForUpdate(ctx context.Context, proofID string) (*proofDomain.Proof, error) {
	var out proofDomain.Proof
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("proof_id = ?", proofID).
		First(&out)
	return &out, res.Error
}

func (r *ProofRepository) ListByLoanID(ctx context.Context, loanID string) ([]*proofDomain.Proof, error) {
	var out []*proofDomain.Proof
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
