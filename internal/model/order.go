package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values.
const (
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a completed sale registered against an open cashier session.
type Order struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketNumber     int64     `gorm:"uniqueIndex;not null"`
	CashierSessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	OperatorID       uuid.UUID `gorm:"type:uuid;not null"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'completed'"`
	CancelReason  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items    []OrderItem    `gorm:"foreignKey:OrderID"`
	Payments []OrderPayment `gorm:"foreignKey:OrderID"`
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Product   *Product
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// OrderPayment records one payment applied to an order.
// Method: "cash" | "card" | "pix" | "other"
type OrderPayment struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Method  string          `gorm:"type:varchar(20);not null"`
	Amount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// PixChargeID is set when the payment was initiated through the pix gateway.
	PixChargeID *string `gorm:"type:varchar(100)"`
	// PixStatus mirrors the gateway charge state: "pending" | "paid" | "expired".
	PixStatus *string `gorm:"type:varchar(20)"`
	CreatedAt time.Time
}
