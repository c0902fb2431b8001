// Package reconcile computes expected till balances and closing variances.
// All functions are pure: they operate on the operation list plus the opening
// balance and never touch storage.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

// Totals aggregates a session's ledger by payment method.
// Only Cash contributes to the physical cash expectation.
type Totals struct {
	Cash  decimal.Decimal
	Card  decimal.Decimal
	Pix   decimal.Decimal
	Other decimal.Decimal
	Total decimal.Decimal
}

// Summary is the derived, never-persisted view of one session's ledger.
type Summary struct {
	TotalSales       decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TotalDeposits    decimal.Decimal
	SalesByMethod    Totals
	ExpectedBalance  decimal.Decimal
}

// Variance classifications by absolute percentage of the expected total.
// normal: <= 1%, warning: <= 5%, critical: > 5%
const (
	VarianceNormal   = "normal"
	VarianceWarning  = "warning"
	VarianceCritical = "critical"
)

// Summarize recomputes the session summary from the opening balance and the
// full operation list. The result is invariant under reordering of operations:
// it only depends on the multiset of amounts.
func Summarize(initialBalance decimal.Decimal, ops []model.CashierOperation) Summary {
	s := Summary{}
	for _, op := range ops {
		switch op.OperationType {
		case model.OpSale:
			s.TotalSales = s.TotalSales.Add(op.Amount)
			addByMethod(&s.SalesByMethod, op)
		case model.OpWithdrawal:
			s.TotalWithdrawals = s.TotalWithdrawals.Add(op.Amount)
		case model.OpDeposit:
			s.TotalDeposits = s.TotalDeposits.Add(op.Amount)
		case model.OpAdjustment:
			// Adjustments carry signed amounts and reverse prior sales.
			s.TotalSales = s.TotalSales.Add(op.Amount)
			addByMethod(&s.SalesByMethod, op)
		}
	}
	s.ExpectedBalance = initialBalance.
		Add(s.SalesByMethod.Cash).
		Sub(s.TotalWithdrawals).
		Add(s.TotalDeposits)
	return s
}

// ExpectedBalance is the cash a till should contain:
// opening + cash-settled sales - withdrawals + deposits.
func ExpectedBalance(initialBalance decimal.Decimal, ops []model.CashierOperation) decimal.Decimal {
	return Summarize(initialBalance, ops).ExpectedBalance
}

// Variance is counted minus expected. Positive means surplus, negative short.
func Variance(counted, expected decimal.Decimal) decimal.Decimal {
	return counted.Sub(expected)
}

// VariancePct returns the variance as a percentage of expected, rounded to
// two places. Zero expected yields zero to avoid a division blowup.
func VariancePct(variance, expected decimal.Decimal) decimal.Decimal {
	if expected.IsZero() {
		return decimal.Zero
	}
	return variance.Div(expected).Mul(decimal.NewFromInt(100)).Round(2)
}

// Classify buckets a percentage variance into normal/warning/critical.
func Classify(pct decimal.Decimal) string {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(decimal.NewFromInt(1)):
		return VarianceNormal
	case abs.LessThanOrEqual(decimal.NewFromInt(5)):
		return VarianceWarning
	default:
		return VarianceCritical
	}
}

func addByMethod(t *Totals, op model.CashierOperation) {
	method := model.MethodOther
	if op.PaymentMethod != nil {
		method = *op.PaymentMethod
	}
	switch method {
	case model.MethodCash:
		t.Cash = t.Cash.Add(op.Amount)
	case model.MethodCard:
		t.Card = t.Card.Add(op.Amount)
	case model.MethodPix:
		t.Pix = t.Pix.Add(op.Amount)
	default:
		t.Other = t.Other.Add(op.Amount)
	}
	t.Total = t.Total.Add(op.Amount)
}
