package dto

import "github.com/shopspring/decimal"

type CreatePayableRequest struct {
	SupplierName string          `json:"supplier_name" validate:"required,min=2"`
	Description  string          `json:"description"   validate:"required,min=3"`
	Amount       decimal.Decimal `json:"amount"        validate:"required,gt=0"`
	DueDate      string          `json:"due_date"      validate:"required,datetime=2006-01-02"`
}

type PayPayableRequest struct {
	// FromCashierID settles the bill in cash from an open till, recording a
	// WITHDRAWAL in its ledger. Empty means paid out-of-band (bank transfer).
	FromCashierID *string `json:"from_cashier_id" validate:"omitempty,uuid"`
}

type PayableFilter struct {
	Status  string `form:"status"   validate:"omitempty,oneof=PENDING PAID"`
	DueFrom string `form:"due_from" validate:"omitempty,datetime=2006-01-02"`
	DueTo   string `form:"due_to"   validate:"omitempty,datetime=2006-01-02"`
}

type PayableResponse struct {
	ID           string          `json:"id"`
	SupplierName string          `json:"supplier_name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	Status       string          `json:"status"`
	PaidAt       *string         `json:"paid_at"`
}
