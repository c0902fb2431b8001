package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

type PayableService interface {
	Create(ctx context.Context, req dto.CreatePayableRequest) (*dto.PayableResponse, error)
	List(ctx context.Context, f dto.PayableFilter) ([]dto.PayableResponse, error)
	// Pay marks the bill PAID. When settled in cash from an open till it also
	// records a WITHDRAWAL in that till's ledger.
	Pay(ctx context.Context, id, operatorID uuid.UUID, req dto.PayPayableRequest) (*dto.PayableResponse, error)
}

type payableService struct {
	repo    repository.PayableRepository
	cashier CashierService
}

func NewPayableService(repo repository.PayableRepository, cashier CashierService) PayableService {
	return &payableService{repo: repo, cashier: cashier}
}

func (s *payableService) Create(ctx context.Context, req dto.CreatePayableRequest) (*dto.PayableResponse, error) {
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, apierror.Validation("invalid due_date")
	}
	p := &model.Payable{
		SupplierName: req.SupplierName,
		Description:  req.Description,
		Amount:       req.Amount,
		DueDate:      due,
		Status:       model.PayablePending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return payableToResponse(p), nil
}

func (s *payableService) List(ctx context.Context, f dto.PayableFilter) ([]dto.PayableResponse, error) {
	filter := repository.PayableFilter{Status: f.Status}
	if f.DueFrom != "" {
		t, err := time.Parse("2006-01-02", f.DueFrom)
		if err != nil {
			return nil, apierror.Validation("invalid due_from")
		}
		filter.DueFrom = &t
	}
	if f.DueTo != "" {
		t, err := time.Parse("2006-01-02", f.DueTo)
		if err != nil {
			return nil, apierror.Validation("invalid due_to")
		}
		filter.DueTo = &t
	}
	bills, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayableResponse, 0, len(bills))
	for i := range bills {
		out = append(out, *payableToResponse(&bills[i]))
	}
	return out, nil
}

func (s *payableService) Pay(ctx context.Context, id, operatorID uuid.UUID, req dto.PayPayableRequest) (*dto.PayableResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("payable not found")
	}
	if p.Status != model.PayablePending {
		return nil, apierror.Conflict("payable is already paid")
	}

	if req.FromCashierID != nil {
		cashierID, err := uuid.Parse(*req.FromCashierID)
		if err != nil {
			return nil, apierror.Validation("invalid from_cashier_id")
		}
		op, err := s.cashier.RegisterWithdrawal(ctx, cashierID, operatorID, dto.CashMovementRequest{
			Amount:      p.Amount,
			Description: "bill payment: " + p.SupplierName,
		})
		if err != nil {
			return nil, err
		}
		opID, _ := uuid.Parse(op.ID)
		p.CashierOperationID = &opID
	}

	now := time.Now()
	p.Status = model.PayablePaid
	p.PaidAt = &now
	p.PaidBy = &operatorID
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return payableToResponse(p), nil
}

func payableToResponse(p *model.Payable) *dto.PayableResponse {
	resp := &dto.PayableResponse{
		ID:           p.ID.String(),
		SupplierName: p.SupplierName,
		Description:  p.Description,
		Amount:       p.Amount,
		DueDate:      p.DueDate.Format("2006-01-02"),
		Status:       p.Status,
	}
	if p.PaidAt != nil {
		pa := p.PaidAt.UTC().Format(time.RFC3339)
		resp.PaidAt = &pa
	}
	return resp
}
