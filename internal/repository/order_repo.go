package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

// OrderFilter narrows the order listing.
type OrderFilter struct {
	SessionID *uuid.UUID
	Status    string
	Page      int
	Limit     int
}

// SalesAgg is the dashboard aggregation row grouped by payment method.
type SalesAgg struct {
	Method string
	Total  decimal.Decimal
}

// TopProductAgg is one top-seller aggregation row.
type TopProductAgg struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int64
	Revenue   decimal.Decimal
}

type OrderRepository interface {
	// DB exposes the underlying handle for multi-repository transactions;
	// nil in unit tests (fakes run the transaction body directly).
	DB() *gorm.DB
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	List(ctx context.Context, f OrderFilter) ([]model.Order, int64, error)
	SetPixStatusByCharge(ctx context.Context, chargeID, status string) error

	CountSince(ctx context.Context, since time.Time) (int64, error)
	SalesByMethodSince(ctx context.Context, since time.Time) ([]SalesAgg, error)
	TopProductsSince(ctx context.Context, since time.Time, limit int) ([]TopProductAgg, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('ticket_number_seq')").Scan(&n).Error
	return n, err
}

func (r *orderRepo) Create(_ context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Payments").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderFilter) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if f.SessionID != nil {
		q = q.Where("cashier_session_id = ?", *f.SessionID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []model.Order
	err := q.Preload("Items.Product").Preload("Payments").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) SetPixStatusByCharge(ctx context.Context, chargeID, status string) error {
	return r.db.WithContext(ctx).Model(&model.OrderPayment{}).
		Where("pix_charge_id = ?", chargeID).
		Update("pix_status", status).Error
}

func (r *orderRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("created_at >= ? AND status = ?", since, model.OrderCompleted).
		Count(&n).Error
	return n, err
}

func (r *orderRepo) SalesByMethodSince(ctx context.Context, since time.Time) ([]SalesAgg, error) {
	var rows []SalesAgg
	err := r.db.WithContext(ctx).
		Table("order_payments").
		Select("order_payments.method AS method, COALESCE(SUM(order_payments.amount), 0) AS total").
		Joins("JOIN orders ON orders.id = order_payments.order_id").
		Where("orders.created_at >= ? AND orders.status = ?", since, model.OrderCompleted).
		Group("order_payments.method").
		Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) TopProductsSince(ctx context.Context, since time.Time, limit int) ([]TopProductAgg, error) {
	var rows []TopProductAgg
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.product_id AS product_id,
			products.name AS name,
			SUM(order_items.quantity) AS quantity,
			COALESCE(SUM(order_items.subtotal), 0) AS revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.status = ?", since, model.OrderCompleted).
		Group("order_items.product_id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
