package reconcile

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

func op(opType, method string, amount float64) model.CashierOperation {
	o := model.CashierOperation{
		ID:            uuid.New(),
		OperationType: opType,
		Amount:        decimal.NewFromFloat(amount),
	}
	if method != "" {
		o.PaymentMethod = &method
	}
	return o
}

func TestExpectedBalance(t *testing.T) {
	// opening 100, cash sales 250, card sale 80 (no drawer effect),
	// withdrawal 30, deposit 20 → expected cash = 100 + 250 - 30 + 20 = 340
	ops := []model.CashierOperation{
		op(model.OpSale, model.MethodCash, 150),
		op(model.OpSale, model.MethodCash, 100),
		op(model.OpSale, model.MethodCard, 80),
		op(model.OpWithdrawal, "", 30),
		op(model.OpDeposit, "", 20),
	}

	expected := ExpectedBalance(decimal.NewFromInt(100), ops)
	assert.Equal(t, "340", expected.String())
}

func TestSummarizeByMethod(t *testing.T) {
	ops := []model.CashierOperation{
		op(model.OpSale, model.MethodCash, 50),
		op(model.OpSale, model.MethodCard, 75),
		op(model.OpSale, model.MethodPix, 25),
		op(model.OpSale, model.MethodOther, 10),
	}

	sum := Summarize(decimal.Zero, ops)
	assert.Equal(t, "50", sum.SalesByMethod.Cash.String())
	assert.Equal(t, "75", sum.SalesByMethod.Card.String())
	assert.Equal(t, "25", sum.SalesByMethod.Pix.String())
	assert.Equal(t, "10", sum.SalesByMethod.Other.String())
	assert.Equal(t, "160", sum.SalesByMethod.Total.String())
	assert.Equal(t, "160", sum.TotalSales.String())
	// Only cash reaches the drawer
	assert.Equal(t, "50", sum.ExpectedBalance.String())
}

func TestSummarizeOrderInvariant(t *testing.T) {
	// The summary depends only on the multiset of operations, not their order.
	ops := []model.CashierOperation{
		op(model.OpSale, model.MethodCash, 120),
		op(model.OpWithdrawal, "", 40),
		op(model.OpSale, model.MethodPix, 60),
		op(model.OpDeposit, "", 15),
		op(model.OpAdjustment, model.MethodCash, -120),
		op(model.OpSale, model.MethodCard, 90),
	}
	initial := decimal.NewFromInt(500)
	want := Summarize(initial, ops)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.CashierOperation, len(ops))
		copy(shuffled, ops)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Summarize(initial, shuffled)
		assert.True(t, want.ExpectedBalance.Equal(got.ExpectedBalance))
		assert.True(t, want.TotalSales.Equal(got.TotalSales))
		assert.True(t, want.SalesByMethod.Cash.Equal(got.SalesByMethod.Cash))
	}
}

func TestAdjustmentReversesSale(t *testing.T) {
	// A cancelled cash sale leaves the drawer where it started.
	ops := []model.CashierOperation{
		op(model.OpSale, model.MethodCash, 200),
		op(model.OpAdjustment, model.MethodCash, -200),
	}
	sum := Summarize(decimal.NewFromInt(100), ops)
	assert.Equal(t, "0", sum.TotalSales.String())
	assert.Equal(t, "100", sum.ExpectedBalance.String())
}

func TestVarianceSign(t *testing.T) {
	expected := decimal.NewFromInt(70)

	short := Variance(decimal.NewFromInt(65), expected)
	assert.Equal(t, "-5", short.String())

	over := Variance(decimal.NewFromInt(72), expected)
	assert.Equal(t, "2", over.String())

	exact := Variance(decimal.NewFromInt(70), expected)
	assert.True(t, exact.IsZero())
}

func TestVariancePctZeroExpected(t *testing.T) {
	pct := VariancePct(decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, pct.IsZero())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{0, VarianceNormal},
		{0.5, VarianceNormal},
		{1, VarianceNormal},
		{-1, VarianceNormal},
		{1.01, VarianceWarning},
		{-4, VarianceWarning},
		{5, VarianceWarning},
		{5.01, VarianceCritical},
		{-10, VarianceCritical},
	}
	for _, tc := range cases {
		got := Classify(decimal.NewFromFloat(tc.pct))
		assert.Equal(t, tc.want, got, "pct %v", tc.pct)
	}
}
