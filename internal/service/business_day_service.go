package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/cache"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/reconcile"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/worker"
)

type BusinessDayService interface {
	Open(ctx context.Context, openedBy uuid.UUID, req dto.OpenBusinessDayRequest) (*dto.BusinessDayResponse, error)
	Close(ctx context.Context, id, closedBy uuid.UUID, req dto.CloseBusinessDayRequest) (*dto.BusinessDayResponse, error)
	// Current returns (nil, nil) when no day is open — a valid empty state.
	Current(ctx context.Context) (*dto.BusinessDayResponse, error)
	// CurrentEntity exposes the cached entity for the lifecycle snapshot.
	CurrentEntity(ctx context.Context) (*model.BusinessDay, error)
	List(ctx context.Context, q dto.ListBusinessDaysQuery) ([]dto.BusinessDayResponse, error)
	// Summary fails soft: on repository error it logs and returns zeros.
	Summary(ctx context.Context, id uuid.UUID) (*dto.BusinessDaySummaryResponse, error)
}

type businessDayService struct {
	repo        repository.BusinessDayRepository
	cashierRepo repository.CashierRepository
	currentDay  *cache.CurrentDay
	dispatcher  *worker.Dispatcher
	storeID     string
}

func NewBusinessDayService(
	repo repository.BusinessDayRepository,
	cashierRepo repository.CashierRepository,
	currentDay *cache.CurrentDay,
	dispatcher *worker.Dispatcher,
	storeID string,
) BusinessDayService {
	return &businessDayService{
		repo:        repo,
		cashierRepo: cashierRepo,
		currentDay:  currentDay,
		dispatcher:  dispatcher,
		storeID:     storeID,
	}
}

// ── Open ─────────────────────────────────────────────────────────────────────

func (s *businessDayService) Open(ctx context.Context, openedBy uuid.UUID, req dto.OpenBusinessDayRequest) (*dto.BusinessDayResponse, error) {
	// Guard: at most one OPEN day per store
	existing, err := s.repo.FindOpenByStore(ctx, s.storeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Validation("a business day is already open for this store")
	}

	date := time.Now().Truncate(24 * time.Hour)
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apierror.Validation("invalid date")
		}
	}

	day := &model.BusinessDay{
		StoreID:  s.storeID,
		Date:     date,
		Status:   model.DayOpen,
		OpenedBy: openedBy,
		Notes:    req.Notes,
		OpenedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, day); err != nil {
		return nil, err
	}
	s.currentDay.Invalidate(ctx, s.storeID)

	return businessDayToResponse(day), nil
}

// ── Close ────────────────────────────────────────────────────────────────────

func (s *businessDayService) Close(ctx context.Context, id, closedBy uuid.UUID, req dto.CloseBusinessDayRequest) (*dto.BusinessDayResponse, error) {
	day, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("business day not found")
	}
	if day.Status != model.DayOpen {
		return nil, apierror.Conflict("business day is already closed")
	}

	// Guard: no till under this day may still be open
	openTills, err := s.cashierRepo.CountOpenByBusinessDay(ctx, id)
	if err != nil {
		return nil, err
	}
	if openTills > 0 {
		return nil, apierror.Conflict("close all tills before closing the business day")
	}

	now := time.Now()
	day.Status = model.DayClosed
	day.ClosedBy = &closedBy
	day.ClosedAt = &now
	day.Notes = mergeNotes(day.Notes, req.Notes)

	if err := s.repo.Update(ctx, day); err != nil {
		return nil, err
	}
	s.currentDay.Invalidate(ctx, s.storeID)

	// Day-close report is generated and mailed asynchronously; a queue failure
	// must not undo the close.
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueDayReport(ctx, worker.DayReportJobPayload{BusinessDayID: day.ID.String()}); err != nil {
			log.Error().Err(err).Str("business_day_id", day.ID.String()).Msg("failed to enqueue day report")
		}
	}

	return businessDayToResponse(day), nil
}

// ── Current ──────────────────────────────────────────────────────────────────

func (s *businessDayService) CurrentEntity(ctx context.Context) (*model.BusinessDay, error) {
	return s.currentDay.Get(ctx, s.storeID, func(ctx context.Context) (*model.BusinessDay, error) {
		return s.repo.FindOpenByStore(ctx, s.storeID)
	})
}

func (s *businessDayService) Current(ctx context.Context) (*dto.BusinessDayResponse, error) {
	day, err := s.CurrentEntity(ctx)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}
	return businessDayToResponse(day), nil
}

// ── List ─────────────────────────────────────────────────────────────────────

func (s *businessDayService) List(ctx context.Context, q dto.ListBusinessDaysQuery) ([]dto.BusinessDayResponse, error) {
	f := repository.BusinessDayFilter{Status: q.Status}
	if q.StartDate != "" {
		t, err := time.Parse("2006-01-02", q.StartDate)
		if err != nil {
			return nil, apierror.Validation("invalid start_date")
		}
		f.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse("2006-01-02", q.EndDate)
		if err != nil {
			return nil, apierror.Validation("invalid end_date")
		}
		f.EndDate = &t
	}

	days, err := s.repo.List(ctx, s.storeID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BusinessDayResponse, 0, len(days))
	for i := range days {
		out = append(out, *businessDayToResponse(&days[i]))
	}
	return out, nil
}

// ── Summary ──────────────────────────────────────────────────────────────────

func (s *businessDayService) Summary(ctx context.Context, id uuid.UUID) (*dto.BusinessDaySummaryResponse, error) {
	resp := &dto.BusinessDaySummaryResponse{BusinessDayID: id.String()}

	sessions, err := s.cashierRepo.ListByBusinessDay(ctx, id)
	if err != nil {
		// Informational query — never blocks the UI
		log.Error().Err(err).Str("business_day_id", id.String()).Msg("day summary failed, returning zeros")
		return resp, nil
	}

	// SALE ledger rows are per payment; count orders by distinct reference.
	orders := make(map[uuid.UUID]struct{})
	for i := range sessions {
		sess := &sessions[i]
		sum := reconcile.Summarize(sess.InitialBalance, sess.Operations)
		resp.TotalSales = resp.TotalSales.Add(sum.TotalSales)
		resp.TotalWithdrawals = resp.TotalWithdrawals.Add(sum.TotalWithdrawals)
		resp.TotalDeposits = resp.TotalDeposits.Add(sum.TotalDeposits)
		resp.SalesByMethod.Cash = resp.SalesByMethod.Cash.Add(sum.SalesByMethod.Cash)
		resp.SalesByMethod.Card = resp.SalesByMethod.Card.Add(sum.SalesByMethod.Card)
		resp.SalesByMethod.Pix = resp.SalesByMethod.Pix.Add(sum.SalesByMethod.Pix)
		resp.SalesByMethod.Other = resp.SalesByMethod.Other.Add(sum.SalesByMethod.Other)
		resp.SalesByMethod.Total = resp.SalesByMethod.Total.Add(sum.SalesByMethod.Total)
		resp.SessionsOpened++
		if sess.Status == model.CashierOpen {
			resp.SessionsOpen++
		}
		for _, op := range sess.Operations {
			if op.OperationType == model.OpSale && op.ReferenceID != nil {
				orders[*op.ReferenceID] = struct{}{}
			}
		}
	}
	resp.TotalOrders = int64(len(orders))
	return resp, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func businessDayToResponse(d *model.BusinessDay) *dto.BusinessDayResponse {
	resp := &dto.BusinessDayResponse{
		ID:       d.ID.String(),
		StoreID:  d.StoreID,
		Date:     d.Date.Format("2006-01-02"),
		Status:   d.Status,
		OpenedBy: d.OpenedBy.String(),
		Notes:    d.Notes,
		OpenedAt: d.OpenedAt.UTC().Format(time.RFC3339),
	}
	if d.ClosedBy != nil {
		cb := d.ClosedBy.String()
		resp.ClosedBy = &cb
	}
	if d.ClosedAt != nil {
		ca := d.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &ca
	}
	return resp
}

func mergeNotes(existing, extra *string) *string {
	if extra == nil || *extra == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return extra
	}
	merged := *existing + "\n" + *extra
	return &merged
}
