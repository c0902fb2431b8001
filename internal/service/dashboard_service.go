package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

// DashboardService serves the analytics widgets. Every aggregate fails soft:
// a repository error produces a zero value and a log line, never a 5xx.
type DashboardService interface {
	Today(ctx context.Context) *dto.DashboardResponse
}

type dashboardService struct {
	orders   repository.OrderRepository
	payables repository.PayableRepository
}

func NewDashboardService(orders repository.OrderRepository, payables repository.PayableRepository) DashboardService {
	return &dashboardService{orders: orders, payables: payables}
}

func (s *dashboardService) Today(ctx context.Context) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{TopProducts: []dto.TopProduct{}}
	since := time.Now().Truncate(24 * time.Hour)

	if n, err := s.orders.CountSince(ctx, since); err != nil {
		log.Error().Err(err).Msg("dashboard: order count failed")
	} else {
		resp.OrdersToday = n
	}

	if rows, err := s.orders.SalesByMethodSince(ctx, since); err != nil {
		log.Error().Err(err).Msg("dashboard: sales by method failed")
	} else {
		for _, row := range rows {
			switch row.Method {
			case model.MethodCash:
				resp.SalesByMethod.Cash = row.Total
			case model.MethodCard:
				resp.SalesByMethod.Card = row.Total
			case model.MethodPix:
				resp.SalesByMethod.Pix = row.Total
			default:
				resp.SalesByMethod.Other = resp.SalesByMethod.Other.Add(row.Total)
			}
			resp.SalesByMethod.Total = resp.SalesByMethod.Total.Add(row.Total)
		}
		resp.SalesToday = resp.SalesByMethod.Total
	}

	if resp.OrdersToday > 0 {
		resp.AverageTicket = resp.SalesToday.Div(decimal.NewFromInt(resp.OrdersToday)).Round(2)
	}

	if rows, err := s.orders.TopProductsSince(ctx, since, 5); err != nil {
		log.Error().Err(err).Msg("dashboard: top products failed")
	} else {
		for _, row := range rows {
			resp.TopProducts = append(resp.TopProducts, dto.TopProduct{
				ProductID: row.ProductID.String(),
				Name:      row.Name,
				Quantity:  row.Quantity,
				Revenue:   row.Revenue,
			})
		}
	}

	if n, err := s.payables.CountPending(ctx); err != nil {
		log.Error().Err(err).Msg("dashboard: pending payables failed")
	} else {
		resp.PendingBills = n
	}

	return resp
}
