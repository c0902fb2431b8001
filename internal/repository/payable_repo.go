package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

type PayableFilter struct {
	Status  string
	DueFrom *time.Time
	DueTo   *time.Time
}

type PayableRepository interface {
	Create(ctx context.Context, p *model.Payable) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payable, error)
	Update(ctx context.Context, p *model.Payable) error
	List(ctx context.Context, f PayableFilter) ([]model.Payable, error)
	CountPending(ctx context.Context) (int64, error)
}

type payableRepo struct{ db *gorm.DB }

func NewPayableRepository(db *gorm.DB) PayableRepository { return &payableRepo{db: db} }

func (r *payableRepo) Create(ctx context.Context, p *model.Payable) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *payableRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payable, error) {
	var p model.Payable
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *payableRepo) Update(ctx context.Context, p *model.Payable) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *payableRepo) List(ctx context.Context, f PayableFilter) ([]model.Payable, error) {
	q := r.db.WithContext(ctx).Order("due_date ASC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DueFrom != nil {
		q = q.Where("due_date >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		q = q.Where("due_date <= ?", *f.DueTo)
	}
	var bills []model.Payable
	err := q.Find(&bills).Error
	return bills, err
}

func (r *payableRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Payable{}).
		Where("status = ?", model.PayablePending).
		Count(&n).Error
	return n, err
}
