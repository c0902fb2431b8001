package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/cache"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/reconcile"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

type CashierService interface {
	// TerminalStatus is side-effect-free: reports whether the terminal has an
	// OPEN session and a snapshot of it.
	TerminalStatus(ctx context.Context, terminalID string) (*dto.TerminalStatusResponse, error)
	Open(ctx context.Context, operator *model.User, req dto.OpenCashierRequest) (*dto.CashierResponse, error)
	Close(ctx context.Context, id uuid.UUID, req dto.CloseCashierRequest) (*dto.CashierResponse, error)
	RegisterWithdrawal(ctx context.Context, id, operatorID uuid.UUID, req dto.CashMovementRequest) (*dto.CashierOperationResponse, error)
	RegisterDeposit(ctx context.Context, id, operatorID uuid.UUID, req dto.CashMovementRequest) (*dto.CashierOperationResponse, error)
	Summary(ctx context.Context, id uuid.UUID) (*dto.CashierSummaryResponse, error)
	History(ctx context.Context, page, limit int) ([]dto.CashierResponse, int64, error)
	// FindOpenSession is used by the order service to validate a session
	// before registering a sale against it.
	FindOpenSession(ctx context.Context, id uuid.UUID) (*model.CashierSession, error)
}

type cashierService struct {
	repo       repository.CashierRepository
	dayRepo    repository.BusinessDayRepository
	currentDay *cache.CurrentDay
	storeID    string
}

func NewCashierService(
	repo repository.CashierRepository,
	dayRepo repository.BusinessDayRepository,
	currentDay *cache.CurrentDay,
	storeID string,
) CashierService {
	return &cashierService{repo: repo, dayRepo: dayRepo, currentDay: currentDay, storeID: storeID}
}

// ── TerminalStatus ───────────────────────────────────────────────────────────

func (s *cashierService) TerminalStatus(ctx context.Context, terminalID string) (*dto.TerminalStatusResponse, error) {
	sess, err := s.repo.FindOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	resp := &dto.TerminalStatusResponse{TerminalID: terminalID}
	if sess != nil {
		resp.HasOpenCashier = true
		resp.Cashier = cashierToResponse(sess)
	}
	return resp, nil
}

// ── Open ─────────────────────────────────────────────────────────────────────

func (s *cashierService) Open(ctx context.Context, operator *model.User, req dto.OpenCashierRequest) (*dto.CashierResponse, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, apierror.Validation("opening balance cannot be negative")
	}

	// Guard: one OPEN session per terminal
	if existing, err := s.repo.FindOpenByTerminal(ctx, req.TerminalID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apierror.Conflict("terminal already has an open cashier session")
	}

	// Guard: the referenced business day must be OPEN right now
	dayID, err := uuid.Parse(req.BusinessDayID)
	if err != nil {
		return nil, apierror.Validation("invalid business_day_id")
	}
	day, err := s.dayRepo.FindByID(ctx, dayID)
	if err != nil {
		return nil, apierror.Conflict("business day not found")
	}
	if day.Status != model.DayOpen {
		return nil, apierror.Conflict("business day is not open")
	}

	sess := &model.CashierSession{
		TerminalID:     req.TerminalID,
		OperatorID:     operator.ID,
		OperatorName:   operator.Name,
		BusinessDayID:  dayID,
		Status:         model.CashierOpen,
		InitialBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		Notes:          req.Notes,
		OpenedAt:       time.Now(),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	s.currentDay.Invalidate(ctx, s.storeID)

	return cashierToResponse(sess), nil
}

// ── Close ────────────────────────────────────────────────────────────────────
// Over/short tills are allowed to close: the variance is computed, classified
// and recorded, never used to block. A critical variance requires notes so
// the discrepancy is explained for later audit.

func (s *cashierService) Close(ctx context.Context, id uuid.UUID, req dto.CloseCashierRequest) (*dto.CashierResponse, error) {
	if req.CountedBalance.IsNegative() {
		return nil, apierror.Validation("counted balance cannot be negative")
	}

	sess, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cashier session not found")
	}
	if sess.Status != model.CashierOpen {
		return nil, apierror.Conflict("cashier session is already closed")
	}

	expected := reconcile.ExpectedBalance(sess.InitialBalance, sess.Operations)
	variance := reconcile.Variance(req.CountedBalance, expected)
	pct := reconcile.VariancePct(variance, expected)
	class := reconcile.Classify(pct)

	if class == reconcile.VarianceCritical && (req.Notes == nil || *req.Notes == "") {
		return nil, apierror.Validation("critical variance: closing notes are required")
	}

	now := time.Now()
	counted := req.CountedBalance
	sess.Status = model.CashierClosed
	sess.FinalBalance = &counted
	sess.Variance = &variance
	sess.VarianceClass = &class
	sess.CurrentBalance = expected
	sess.Notes = mergeNotes(sess.Notes, req.Notes)
	sess.ClosedAt = &now

	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}
	s.currentDay.Invalidate(ctx, s.storeID)

	return cashierToResponse(sess), nil
}

// ── Manual movements ─────────────────────────────────────────────────────────

func (s *cashierService) RegisterWithdrawal(ctx context.Context, id, operatorID uuid.UUID, req dto.CashMovementRequest) (*dto.CashierOperationResponse, error) {
	return s.registerMovement(ctx, id, operatorID, model.OpWithdrawal, req)
}

func (s *cashierService) RegisterDeposit(ctx context.Context, id, operatorID uuid.UUID, req dto.CashMovementRequest) (*dto.CashierOperationResponse, error) {
	return s.registerMovement(ctx, id, operatorID, model.OpDeposit, req)
}

func (s *cashierService) registerMovement(ctx context.Context, id, operatorID uuid.UUID, opType string, req dto.CashMovementRequest) (*dto.CashierOperationResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("amount must be positive")
	}

	sess, err := s.FindOpenSession(ctx, id)
	if err != nil {
		return nil, err
	}

	op := &model.CashierOperation{
		CashierSessionID: sess.ID,
		OperationType:    opType,
		Amount:           req.Amount,
		OperatorID:       operatorID,
		Description:      req.Description,
		CreatedAt:        time.Now(),
	}
	if err := s.repo.CreateOperation(ctx, op); err != nil {
		return nil, err
	}

	// Manual movements are always cash: adjust the running expected balance.
	if opType == model.OpWithdrawal {
		sess.CurrentBalance = sess.CurrentBalance.Sub(req.Amount)
	} else {
		sess.CurrentBalance = sess.CurrentBalance.Add(req.Amount)
	}
	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	return operationToResponse(op), nil
}

// ── Summary ──────────────────────────────────────────────────────────────────

func (s *cashierService) Summary(ctx context.Context, id uuid.UUID) (*dto.CashierSummaryResponse, error) {
	sess, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cashier session not found")
	}

	sum := reconcile.Summarize(sess.InitialBalance, sess.Operations)
	return &dto.CashierSummaryResponse{
		CashierID:        sess.ID.String(),
		InitialBalance:   sess.InitialBalance,
		TotalSales:       sum.TotalSales,
		TotalWithdrawals: sum.TotalWithdrawals,
		TotalDeposits:    sum.TotalDeposits,
		SalesByMethod: dto.MethodTotals{
			Cash:  sum.SalesByMethod.Cash,
			Card:  sum.SalesByMethod.Card,
			Pix:   sum.SalesByMethod.Pix,
			Other: sum.SalesByMethod.Other,
			Total: sum.SalesByMethod.Total,
		},
		ExpectedBalance: sum.ExpectedBalance,
	}, nil
}

// ── History ──────────────────────────────────────────────────────────────────

func (s *cashierService) History(ctx context.Context, page, limit int) ([]dto.CashierResponse, int64, error) {
	sessions, total, err := s.repo.ListClosed(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CashierResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *cashierToResponse(&sessions[i]))
	}
	return out, total, nil
}

// ── FindOpenSession ──────────────────────────────────────────────────────────

func (s *cashierService) FindOpenSession(ctx context.Context, id uuid.UUID) (*model.CashierSession, error) {
	sess, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cashier session not found")
	}
	if sess.Status != model.CashierOpen {
		return nil, apierror.Conflict("cashier session is not open")
	}
	return sess, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func cashierToResponse(s *model.CashierSession) *dto.CashierResponse {
	resp := &dto.CashierResponse{
		ID:             s.ID.String(),
		TerminalID:     s.TerminalID,
		OperatorID:     s.OperatorID.String(),
		OperatorName:   s.OperatorName,
		BusinessDayID:  s.BusinessDayID.String(),
		Status:         s.Status,
		InitialBalance: s.InitialBalance,
		CurrentBalance: s.CurrentBalance,
		FinalBalance:   s.FinalBalance,
		Notes:          s.Notes,
		OpenedAt:       s.OpenedAt.UTC().Format(time.RFC3339),
	}
	if s.Variance != nil && s.VarianceClass != nil {
		pct := decimal.Zero
		if s.FinalBalance != nil {
			expected := s.FinalBalance.Sub(*s.Variance)
			pct = reconcile.VariancePct(*s.Variance, expected)
		}
		resp.Variance = &dto.VarianceResponse{
			Amount:         *s.Variance,
			Percentage:     pct,
			Classification: *s.VarianceClass,
		}
	}
	if s.ClosedAt != nil {
		ca := s.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &ca
	}
	return resp
}

func operationToResponse(op *model.CashierOperation) *dto.CashierOperationResponse {
	return &dto.CashierOperationResponse{
		ID:            op.ID.String(),
		OperationType: op.OperationType,
		PaymentMethod: op.PaymentMethod,
		Amount:        op.Amount,
		OperatorID:    op.OperatorID.String(),
		Description:   op.Description,
		CreatedAt:     op.CreatedAt.UTC().Format(time.RFC3339),
	}
}
