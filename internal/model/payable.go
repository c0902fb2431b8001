package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payable status values.
const (
	PayablePending = "PENDING"
	PayablePaid    = "PAID"
)

// Payable is a supplier bill to be settled by the store.
type Payable struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierName string          `gorm:"not null"`
	Description  string          `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate      time.Time       `gorm:"type:date;not null;index"`
	Status       string          `gorm:"type:varchar(10);not null;default:'PENDING'"`
	PaidAt       *time.Time
	PaidBy       *uuid.UUID `gorm:"type:uuid"`
	// CashierOperationID links the bill to the till WITHDRAWAL when paid in cash
	CashierOperationID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
