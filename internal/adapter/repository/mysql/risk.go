package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	riskDomain "peerlend-backend/internal/domain/risk"
)

type RiskFlagRepository struct{ db *gorm.DB }

func NewRiskFlagRepository(db *gorm.DB) *RiskFlagRepository { return &RiskFlagRepository{db: db} }

func (r *RiskFlagRepository) Create(ctx context.Context, f *riskDomain.Flag) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *RiskFlagRepository) Save(ctx context.Context, f *riskDomain.Flag) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *RiskFlagRepository) GetByFlagID(ctx context.Context, flagID string) (*riskDomain.Flag, error) {
	var out riskDomain.Flag
	res := r.db.WithContext(ctx).Where("flag_id = ?", flagID).First(&out)
	return &out, res.Error
}

func (r *RiskFlagRepository) GetByFlagIDForUpdate(ctx context.Context, flagID string) (*riskDomain.Flag, error) {
	var out riskDomain.Flag
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("flag_id = ?", flagID).
		First(&out)
	return &out, res.Error
}

// served by the (borrower_id, resolved_at) composite index
func (r *RiskFlagRepository) ListUnresolvedByBorrowerID(ctx context.Context, borrowerID string) ([]*riskDomain.Flag, error) {
	var out []*riskDomain.Flag
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND resolved_at IS NULL", borrowerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
