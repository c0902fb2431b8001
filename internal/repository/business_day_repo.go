package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

// BusinessDayFilter narrows the historical listing. Zero values mean "any".
type BusinessDayFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
}

type BusinessDayRepository interface {
	Create(ctx context.Context, d *model.BusinessDay) error
	// FindOpenByStore returns (nil, nil) when no OPEN day exists — the valid
	// empty state, not an error.
	FindOpenByStore(ctx context.Context, storeID string) (*model.BusinessDay, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BusinessDay, error)
	Update(ctx context.Context, d *model.BusinessDay) error
	List(ctx context.Context, storeID string, f BusinessDayFilter) ([]model.BusinessDay, error)
}

type businessDayRepo struct{ db *gorm.DB }

func NewBusinessDayRepository(db *gorm.DB) BusinessDayRepository {
	return &businessDayRepo{db: db}
}

func (r *businessDayRepo) Create(ctx context.Context, d *model.BusinessDay) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *businessDayRepo) FindOpenByStore(ctx context.Context, storeID string) (*model.BusinessDay, error) {
	var d model.BusinessDay
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, model.DayOpen).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *businessDayRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BusinessDay, error) {
	var d model.BusinessDay
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *businessDayRepo) Update(ctx context.Context, d *model.BusinessDay) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *businessDayRepo) List(ctx context.Context, storeID string, f BusinessDayFilter) ([]model.BusinessDay, error) {
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID).Order("date ASC")
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var days []model.BusinessDay
	err := q.Find(&days).Error
	return days, err
}
