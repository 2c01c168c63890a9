package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	scheduleDomain "peerlend-backend/internal/domain/schedule"
)

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

func (r *ScheduleRepository) CreateBatch(ctx context.Context, batch []*scheduleDomain.Installment) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *ScheduleRepository) ListByLoanID(ctx context.Context, loanID string) ([]*scheduleDomain.Installment, error) {
	var out []*scheduleDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_no ASC").
		Find(&out)
	return out, res.Error
}

// ListOutstandingForUpdate locks the pending/partial rows in FIFO order so
// concurrent settlements of the same loan serialize.
func (r *ScheduleRepository) ListOutstandingForUpdate(ctx context.Context, loanID string) ([]*scheduleDomain.Installment, error) {
	var out []*scheduleDomain.Installment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ? AND status IN ?", loanID, []scheduleDomain.Status{scheduleDomain.StatusPending, scheduleDomain.StatusPartial}).
		Order("installment_no ASC").
		Find(&out)
	return out, res.Error
}

func (r *ScheduleRepository) CountByLoanID(ctx context.Context, loanID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&scheduleDomain.Installment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}

func (r *ScheduleRepository) Save(ctx context.Context, i *scheduleDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

// RepaymentEventRepository is append-only; there is deliberately no update or
// delete path.
type RepaymentEventRepository struct{ db *gorm.DB }

func NewRepaymentEventRepository(db *gorm.DB) *RepaymentEventRepository {
	return &RepaymentEventRepository{db: db}
}

func (r *RepaymentEventRepository) Create(ctx context.Context, e *scheduleDomain.RepaymentEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *RepaymentEventRepository) ListByLoanID(ctx context.Context, loanID string) ([]*scheduleDomain.RepaymentEvent, error) {
	var out []*scheduleDomain.RepaymentEvent
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
