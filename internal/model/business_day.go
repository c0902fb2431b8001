package model

import (
	"time"

	"github.com/google/uuid"
)

// Business day status values.
const (
	DayOpen   = "OPEN"
	DayClosed = "CLOSED"
)

// BusinessDay represents one store-wide operating period.
// At most one OPEN business day exists per store at any time; once closed the
// record is immutable except for read access.
type BusinessDay struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID  string    `gorm:"type:varchar(50);not null;index"`
	Date     time.Time `gorm:"type:date;not null"`
	Status   string    `gorm:"type:varchar(10);not null;default:'OPEN'"`
	OpenedBy uuid.UUID `gorm:"type:uuid;not null"`
	ClosedBy *uuid.UUID `gorm:"type:uuid"`
	Notes    *string
	OpenedAt time.Time
	ClosedAt *time.Time

	Cashiers []CashierSession `gorm:"foreignKey:BusinessDayID"`
}
