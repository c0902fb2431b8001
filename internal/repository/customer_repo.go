package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	CreateEntry(ctx context.Context, e *model.LoyaltyEntry) error
	CreateEntryTx(tx *gorm.DB, e *model.LoyaltyEntry) error
	// Balance sums the append-only ledger; it is never stored denormalized.
	Balance(ctx context.Context, customerID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, customerID uuid.UUID) ([]model.LoyaltyEntry, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) CreateEntry(ctx context.Context, e *model.LoyaltyEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *customerRepo) CreateEntryTx(tx *gorm.DB, e *model.LoyaltyEntry) error {
	return tx.Create(e).Error
}

func (r *customerRepo) Balance(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Model(&model.LoyaltyEntry{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error
	return balance, err
}

func (r *customerRepo) ListEntries(ctx context.Context, customerID uuid.UUID) ([]model.LoyaltyEntry, error) {
	var entries []model.LoyaltyEntry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
