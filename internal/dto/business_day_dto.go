package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenBusinessDayRequest struct {
	// Date in 2006-01-02 form; empty means today.
	Date  string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes *string `json:"notes"`
}

type CloseBusinessDayRequest struct {
	Notes *string `json:"notes"`
}

type ListBusinessDaysQuery struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status"     validate:"omitempty,oneof=OPEN CLOSED"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BusinessDayResponse struct {
	ID       string  `json:"id"`
	StoreID  string  `json:"store_id"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	OpenedBy string  `json:"opened_by"`
	ClosedBy *string `json:"closed_by"`
	Notes    *string `json:"notes"`
	OpenedAt string  `json:"opened_at"`
	ClosedAt *string `json:"closed_at"`
}

// BusinessDaySummaryResponse aggregates the day across all its till sessions.
type BusinessDaySummaryResponse struct {
	BusinessDayID    string          `json:"business_day_id"`
	TotalOrders      int64           `json:"total_orders"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	SalesByMethod    MethodTotals    `json:"sales_by_method"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	SessionsOpened   int             `json:"sessions_opened"`
	SessionsOpen     int             `json:"sessions_open"`
}
