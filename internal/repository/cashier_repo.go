package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

type CashierRepository interface {
	CreateSession(ctx context.Context, s *model.CashierSession) error
	// FindOpenByTerminal returns (nil, nil) when the terminal has no OPEN session.
	FindOpenByTerminal(ctx context.Context, terminalID string) (*model.CashierSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashierSession, error)
	UpdateSession(ctx context.Context, s *model.CashierSession) error
	UpdateSessionTx(tx *gorm.DB, s *model.CashierSession) error
	CreateOperation(ctx context.Context, op *model.CashierOperation) error
	// CreateOperationTx appends a ledger row inside an order transaction.
	CreateOperationTx(tx *gorm.DB, op *model.CashierOperation) error
	ListOperations(ctx context.Context, sessionID uuid.UUID) ([]model.CashierOperation, error)
	ListByBusinessDay(ctx context.Context, businessDayID uuid.UUID) ([]model.CashierSession, error)
	CountOpenByBusinessDay(ctx context.Context, businessDayID uuid.UUID) (int64, error)
	ListClosed(ctx context.Context, page, limit int) ([]model.CashierSession, int64, error)
}

type cashierRepo struct{ db *gorm.DB }

func NewCashierRepository(db *gorm.DB) CashierRepository { return &cashierRepo{db: db} }

func (r *cashierRepo) CreateSession(ctx context.Context, s *model.CashierSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashierRepo) FindOpenByTerminal(ctx context.Context, terminalID string) (*model.CashierSession, error) {
	var s model.CashierSession
	err := r.db.WithContext(ctx).
		Where("terminal_id = ? AND status = ?", terminalID, model.CashierOpen).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashierRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashierSession, error) {
	var s model.CashierSession
	err := r.db.WithContext(ctx).Preload("Operations").First(&s, id).Error
	return &s, err
}

func (r *cashierRepo) UpdateSession(ctx context.Context, s *model.CashierSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cashierRepo) UpdateSessionTx(tx *gorm.DB, s *model.CashierSession) error {
	return tx.Save(s).Error
}

func (r *cashierRepo) CreateOperation(ctx context.Context, op *model.CashierOperation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *cashierRepo) CreateOperationTx(tx *gorm.DB, op *model.CashierOperation) error {
	return tx.Create(op).Error
}

func (r *cashierRepo) ListOperations(ctx context.Context, sessionID uuid.UUID) ([]model.CashierOperation, error) {
	var ops []model.CashierOperation
	err := r.db.WithContext(ctx).
		Where("cashier_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&ops).Error
	return ops, err
}

func (r *cashierRepo) ListByBusinessDay(ctx context.Context, businessDayID uuid.UUID) ([]model.CashierSession, error) {
	var sessions []model.CashierSession
	err := r.db.WithContext(ctx).
		Preload("Operations").
		Where("business_day_id = ?", businessDayID).
		Order("opened_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *cashierRepo) CountOpenByBusinessDay(ctx context.Context, businessDayID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CashierSession{}).
		Where("business_day_id = ? AND status = ?", businessDayID, model.CashierOpen).
		Count(&n).Error
	return n, err
}

func (r *cashierRepo) ListClosed(ctx context.Context, page, limit int) ([]model.CashierSession, int64, error) {
	var total int64
	q := r.db.Model(&model.CashierSession{}).Where("status = ?", model.CashierClosed)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var sessions []model.CashierSession
	err := q.Order("closed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}
