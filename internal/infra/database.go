package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL objects GORM cannot express
// (the ticket number sequence, partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.BusinessDay{},
		&model.CashierSession{},
		&model.CashierOperation{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderPayment{},
		&model.Customer{},
		&model.LoyaltyEntry{},
		&model.Payable{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Monotonic ticket numbering for orders
		`CREATE SEQUENCE IF NOT EXISTS ticket_number_seq START 1`,
		// One OPEN business day per store, one OPEN session per terminal —
		// database-level backstops for the service guards.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_day_per_store
		     ON business_days (store_id) WHERE status = 'OPEN'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_session_per_terminal
		     ON cashier_sessions (terminal_id) WHERE status = 'OPEN'`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
