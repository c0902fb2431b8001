package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/config"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/infra"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/reconcile"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

// ReportWorker builds the day-close PDF and mails it to the back office.
// Failures only log: the day is already closed, the report is a side effect.
type ReportWorker struct {
	days     repository.BusinessDayRepository
	cashiers repository.CashierRepository
	mailer   *infra.Mailer
	cfg      *config.Config
}

func NewReportWorker(
	days repository.BusinessDayRepository,
	cashiers repository.CashierRepository,
	mailer *infra.Mailer,
	cfg *config.Config,
) *ReportWorker {
	return &ReportWorker{days: days, cashiers: cashiers, mailer: mailer, cfg: cfg}
}

func (w *ReportWorker) Process(ctx context.Context, payload json.RawMessage) {
	var p DayReportJobPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Msg("report worker: bad payload")
		return
	}

	dayID, err := uuid.Parse(p.BusinessDayID)
	if err != nil {
		log.Error().Str("business_day_id", p.BusinessDayID).Msg("report worker: invalid day id")
		return
	}

	report, err := w.buildReport(ctx, dayID)
	if err != nil {
		log.Error().Str("business_day_id", p.BusinessDayID).Err(err).
			Msg("report worker: failed to build report")
		return
	}

	path, err := infra.GenerateDayReportPDF(report, w.cfg.ReportStoragePath)
	if err != nil {
		log.Error().Str("business_day_id", p.BusinessDayID).Err(err).
			Msg("report worker: failed to generate PDF")
		return
	}

	subject := fmt.Sprintf("Day close report — store %s — %s", report.StoreID, report.Date)
	body := fmt.Sprintf(
		"Business day %s closed.\n\nOrders: %d\nTotal sales: %s\nCash: %s  Card: %s  Pix: %s  Other: %s\n",
		report.Date, report.TotalOrders, report.TotalSales.StringFixed(2),
		report.Cash.StringFixed(2), report.Card.StringFixed(2),
		report.Pix.StringFixed(2), report.Other.StringFixed(2),
	)
	if err := w.mailer.SendReport(w.cfg.ReportRecipient, subject, body, path); err != nil {
		log.Error().Str("business_day_id", p.BusinessDayID).Err(err).
			Msg("report worker: failed to send report email")
		return
	}

	log.Info().Str("business_day_id", p.BusinessDayID).Str("pdf", path).
		Msg("day close report sent")
}

func (w *ReportWorker) buildReport(ctx context.Context, dayID uuid.UUID) (*infra.DayReport, error) {
	day, err := w.days.FindByID(ctx, dayID)
	if err != nil {
		return nil, err
	}

	sessions, err := w.cashiers.ListByBusinessDay(ctx, dayID)
	if err != nil {
		return nil, err
	}

	report := &infra.DayReport{
		StoreID: day.StoreID,
		Date:    day.Date.Format("2006-01-02"),
	}

	orderIDs := make(map[uuid.UUID]struct{})
	for _, s := range sessions {
		ops, err := w.cashiers.ListOperations(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		sum := reconcile.Summarize(s.InitialBalance, ops)

		report.TotalSales = report.TotalSales.Add(sum.TotalSales)
		report.Cash = report.Cash.Add(sum.SalesByMethod.Cash)
		report.Card = report.Card.Add(sum.SalesByMethod.Card)
		report.Pix = report.Pix.Add(sum.SalesByMethod.Pix)
		report.Other = report.Other.Add(sum.SalesByMethod.Other)
		report.Withdrawals = report.Withdrawals.Add(sum.TotalWithdrawals)
		report.Deposits = report.Deposits.Add(sum.TotalDeposits)

		for _, op := range ops {
			if op.ReferenceID != nil {
				orderIDs[*op.ReferenceID] = struct{}{}
			}
		}

		line := infra.DayReportSession{
			TerminalID:     s.TerminalID,
			OperatorName:   s.OperatorName,
			InitialBalance: s.InitialBalance,
		}
		if s.FinalBalance != nil {
			line.FinalBalance = *s.FinalBalance
		}
		if s.Variance != nil {
			line.Variance = *s.Variance
		} else {
			line.Variance = decimal.Zero
		}
		if s.VarianceClass != nil {
			line.VarianceClass = *s.VarianceClass
		}
		report.Sessions = append(report.Sessions, line)
	}
	report.TotalOrders = int64(len(orderIDs))

	return report, nil
}
