package model

import (
	"time"

	"github.com/google/uuid"
)

// Loyalty entry types.
const (
	LoyaltyAccrual    = "ACCRUAL"
	LoyaltyRedemption = "REDEMPTION"
)

// Customer is a loyalty-program member.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Phone     *string   `gorm:"uniqueIndex"`
	Email     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	LoyaltyEntries []LoyaltyEntry `gorm:"foreignKey:CustomerID"`
}

// LoyaltyEntry is an append-only row in the customer's points ledger.
// Balance is always the sum of entries; redemptions are negative points.
type LoyaltyEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	EntryType  string    `gorm:"type:varchar(20);not null"`
	Points     int64     `gorm:"not null"`
	// OrderID links accruals to the originating sale
	OrderID     *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"not null"`
	CreatedAt   time.Time
}
