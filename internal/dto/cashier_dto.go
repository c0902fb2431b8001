package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenCashierRequest struct {
	TerminalID     string          `json:"terminal_id"     validate:"required"`
	BusinessDayID  string          `json:"business_day_id" validate:"required,uuid"`
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
	Notes          *string         `json:"notes"`
}

type CloseCashierRequest struct {
	CountedBalance decimal.Decimal `json:"counted_balance" validate:"min=0"`
	Notes          *string         `json:"notes"`
}

type CashMovementRequest struct {
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MethodTotals struct {
	Cash  decimal.Decimal `json:"cash"`
	Card  decimal.Decimal `json:"card"`
	Pix   decimal.Decimal `json:"pix"`
	Other decimal.Decimal `json:"other"`
	Total decimal.Decimal `json:"total"`
}

type VarianceResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
	Classification string          `json:"classification"` // normal | warning | critical
}

type CashierResponse struct {
	ID             string           `json:"id"`
	TerminalID     string           `json:"terminal_id"`
	OperatorID     string           `json:"operator_id"`
	OperatorName   string           `json:"operator_name"`
	BusinessDayID  string           `json:"business_day_id"`
	Status         string           `json:"status"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	FinalBalance   *decimal.Decimal `json:"final_balance"`
	Variance       *VarianceResponse `json:"variance"`
	Notes          *string          `json:"notes"`
	OpenedAt       string           `json:"opened_at"`
	ClosedAt       *string          `json:"closed_at"`
}

type TerminalStatusResponse struct {
	TerminalID     string           `json:"terminal_id"`
	HasOpenCashier bool             `json:"has_open_cashier"`
	Cashier        *CashierResponse `json:"cashier"`
}

type CashierOperationResponse struct {
	ID            string          `json:"id"`
	OperationType string          `json:"operation_type"`
	PaymentMethod *string         `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	OperatorID    string          `json:"operator_id"`
	Description   string          `json:"description"`
	CreatedAt     string          `json:"created_at"`
}

type CashierSummaryResponse struct {
	CashierID        string          `json:"cashier_id"`
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	SalesByMethod    MethodTotals    `json:"sales_by_method"`
	ExpectedBalance  decimal.Decimal `json:"expected_balance"`
}
