package service

import (
	"context"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/lifecycle"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

// StoreService computes the single lifecycle snapshot the UI renders from.
// Both entities are fetched in one call so the state can never be assembled
// from a mix of stale and fresh flags.
type StoreService interface {
	State(ctx context.Context, terminalID string) (*dto.StoreStateResponse, error)
}

type storeService struct {
	days        BusinessDayService
	cashierRepo repository.CashierRepository
}

func NewStoreService(days BusinessDayService, cashierRepo repository.CashierRepository) StoreService {
	return &storeService{days: days, cashierRepo: cashierRepo}
}

func (s *storeService) State(ctx context.Context, terminalID string) (*dto.StoreStateResponse, error) {
	day, err := s.days.CurrentEntity(ctx)
	if err != nil {
		return nil, err
	}

	var sess *model.CashierSession
	anyOpen := false
	if day != nil {
		sess, err = s.cashierRepo.FindOpenByTerminal(ctx, terminalID)
		if err != nil {
			return nil, err
		}
		n, err := s.cashierRepo.CountOpenByBusinessDay(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		anyOpen = n > 0
	}

	state, actions := lifecycle.Compute(day, sess, anyOpen)
	resp := &dto.StoreStateResponse{
		State:       state.String(),
		AnyTillOpen: anyOpen,
		Actions:     actions,
	}
	if day != nil {
		resp.BusinessDay = businessDayToResponse(day)
	}
	if sess != nil {
		resp.Cashier = cashierToResponse(sess)
	}
	return resp, nil
}
