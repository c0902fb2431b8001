package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cashier session status values.
const (
	CashierOpen   = "OPEN"
	CashierClosed = "CLOSED"
)

// Cashier operation types.
const (
	OpSale       = "SALE"
	OpWithdrawal = "WITHDRAWAL"
	OpDeposit    = "DEPOSIT"
	OpAdjustment = "ADJUSTMENT"
)

// Payment methods recorded on operations. Only "cash" contributes to the
// physical cash expectation; card/pix/other affect reported totals only.
const (
	MethodCash  = "cash"
	MethodCard  = "card"
	MethodPix   = "pix"
	MethodOther = "other"
)

// CashierSession represents one terminal's cash-drawer period, nested inside
// a business day. A terminal has at most one OPEN session at a time and the
// owning business day must have been OPEN when the session was opened.
type CashierSession struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TerminalID    string    `gorm:"type:varchar(50);not null;index"`
	OperatorID    uuid.UUID `gorm:"type:uuid;not null"`
	OperatorName  string    `gorm:"not null"`
	BusinessDayID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(10);not null;default:'OPEN'"`

	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CurrentBalance is the running expected cash balance, adjusted by every
	// cash-settled operation.
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// FinalBalance is the cash counted at closing; nil while open.
	FinalBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Variance = FinalBalance - expected at close. Informational only;
	// a nonzero variance never blocks closing.
	Variance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// VarianceClass: "normal" | "warning" | "critical"
	VarianceClass *string `gorm:"type:varchar(20)"`
	Notes         *string
	OpenedAt      time.Time
	ClosedAt      *time.Time

	Operations []CashierOperation `gorm:"foreignKey:CashierSessionID"`
}

// CashierOperation is an immutable event in the till ledger.
// Operations are NEVER modified or deleted — cancellations create inverse
// ADJUSTMENT entries.
type CashierOperation struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashierSessionID uuid.UUID `gorm:"type:uuid;index;not null"`
	OperationType    string    `gorm:"type:varchar(20);not null"`
	// PaymentMethod is set on SALE/ADJUSTMENT rows; nil on manual movements,
	// which are always cash.
	PaymentMethod *string         `gorm:"type:varchar(20)"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OperatorID    uuid.UUID       `gorm:"type:uuid;not null"`
	Description   string          `gorm:"not null"`
	// ReferenceID links to the originating Order for SALE/ADJUSTMENT rows
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}
