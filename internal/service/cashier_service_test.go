package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/cache"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

const testStore = "store-1"

func newCashierFixture(t *testing.T) (CashierService, *fakeCashierRepo, *fakeDayRepo, uuid.UUID) {
	t.Helper()
	cashierRepo := newFakeCashierRepo()
	dayRepo := newFakeDayRepo()

	day := &model.BusinessDay{
		StoreID:  testStore,
		Date:     time.Now(),
		Status:   model.DayOpen,
		OpenedBy: uuid.New(),
		OpenedAt: time.Now(),
	}
	require.NoError(t, dayRepo.Create(context.Background(), day))

	svc := NewCashierService(cashierRepo, dayRepo, cache.NewCurrentDay(nil, 0), testStore)
	return svc, cashierRepo, dayRepo, day.ID
}

func testOperator() *model.User {
	return &model.User{ID: uuid.New(), Name: "Maria Cashier", Role: "cashier"}
}

func openTestSession(t *testing.T, svc CashierService, dayID uuid.UUID, terminal string, opening float64) *dto.CashierResponse {
	t.Helper()
	resp, err := svc.Open(context.Background(), testOperator(), dto.OpenCashierRequest{
		TerminalID:     terminal,
		BusinessDayID:  dayID.String(),
		OpeningBalance: decimal.NewFromFloat(opening),
	})
	require.NoError(t, err)
	return resp
}

func TestOpenCashier(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)

	resp := openTestSession(t, svc, dayID, "T1", 100)

	assert.Equal(t, model.CashierOpen, resp.Status)
	assert.Equal(t, "T1", resp.TerminalID)
	assert.Equal(t, "100", resp.InitialBalance.String())
	assert.Equal(t, "100", resp.CurrentBalance.String())
	assert.Nil(t, resp.FinalBalance)
}

func TestOpenCashierNegativeBalance(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)

	_, err := svc.Open(context.Background(), testOperator(), dto.OpenCashierRequest{
		TerminalID:     "T1",
		BusinessDayID:  dayID.String(),
		OpeningBalance: decimal.NewFromInt(-50),
	})
	assert.ErrorContains(t, err, "cannot be negative")
}

func TestOpenCashierTerminalAlreadyOpen(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)
	openTestSession(t, svc, dayID, "T1", 100)

	_, err := svc.Open(context.Background(), testOperator(), dto.OpenCashierRequest{
		TerminalID:     "T1",
		BusinessDayID:  dayID.String(),
		OpeningBalance: decimal.NewFromInt(100),
	})
	assert.ErrorContains(t, err, "already has an open cashier session")

	// A different terminal under the same day opens fine
	openTestSession(t, svc, dayID, "T2", 50)
}

func TestOpenCashierRequiresOpenDay(t *testing.T) {
	svc, _, dayRepo, dayID := newCashierFixture(t)

	day, err := dayRepo.FindByID(context.Background(), dayID)
	require.NoError(t, err)
	day.Status = model.DayClosed
	require.NoError(t, dayRepo.Update(context.Background(), day))

	_, err = svc.Open(context.Background(), testOperator(), dto.OpenCashierRequest{
		TerminalID:     "T1",
		BusinessDayID:  dayID.String(),
		OpeningBalance: decimal.NewFromInt(100),
	})
	assert.ErrorContains(t, err, "business day is not open")
}

func TestWithdrawalUpdatesRunningBalance(t *testing.T) {
	svc, repo, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	opResp, err := svc.RegisterWithdrawal(context.Background(), sessionID, uuid.New(), dto.CashMovementRequest{
		Amount:      decimal.NewFromInt(30),
		Description: "supplier cash payment",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OpWithdrawal, opResp.OperationType)

	sess := repo.sessions[sessionID]
	assert.Equal(t, "70", sess.CurrentBalance.String())
	assert.Len(t, repo.operations, 1)
}

func TestDepositUpdatesRunningBalance(t *testing.T) {
	svc, repo, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	_, err := svc.RegisterDeposit(context.Background(), sessionID, uuid.New(), dto.CashMovementRequest{
		Amount:      decimal.NewFromInt(25),
		Description: "change fund top-up",
	})
	require.NoError(t, err)

	assert.Equal(t, "125", repo.sessions[sessionID].CurrentBalance.String())
}

func TestMovementRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	_, err := svc.RegisterWithdrawal(context.Background(), sessionID, uuid.New(), dto.CashMovementRequest{
		Amount:      decimal.Zero,
		Description: "nothing",
	})
	assert.ErrorContains(t, err, "must be positive")
}

func TestMovementRejectsClosedSession(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	_, err := svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.RegisterDeposit(context.Background(), sessionID, uuid.New(), dto.CashMovementRequest{
		Amount:      decimal.NewFromInt(10),
		Description: "late deposit",
	})
	assert.ErrorContains(t, err, "not open")
}

func TestCloseComputesVariance(t *testing.T) {
	// Open 100, withdraw 30 → expected 70. Count 65 → variance -5 (short),
	// pct ≈ -7.14% → critical, so notes are required.
	svc, _, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	_, err := svc.RegisterWithdrawal(context.Background(), sessionID, uuid.New(), dto.CashMovementRequest{
		Amount:      decimal.NewFromInt(30),
		Description: "supplier cash payment",
	})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(65),
	})
	assert.ErrorContains(t, err, "notes are required")

	notes := "shortage investigated, till miscount at shift change"
	closed, err := svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(65),
		Notes:          &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, model.CashierClosed, closed.Status)
	require.NotNil(t, closed.FinalBalance)
	assert.Equal(t, "65", closed.FinalBalance.String())
	require.NotNil(t, closed.Variance)
	assert.Equal(t, "-5", closed.Variance.Amount.String())
	assert.Equal(t, "critical", closed.Variance.Classification)
	assert.NotNil(t, closed.ClosedAt)
}

func TestCloseExactCountIsNormal(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	closed, err := svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NotNil(t, closed.Variance)
	assert.True(t, closed.Variance.Amount.IsZero())
	assert.Equal(t, "normal", closed.Variance.Classification)
}

func TestCloseOverageNeverBlocks(t *testing.T) {
	// Surplus of 2 on 100 expected → 2% → warning, closes without notes.
	svc, _, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	closed, err := svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(102),
	})
	require.NoError(t, err)
	assert.Equal(t, "2", closed.Variance.Amount.String())
	assert.Equal(t, "warning", closed.Variance.Classification)
}

func TestCloseTwiceConflicts(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	_, err := svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), sessionID, dto.CloseCashierRequest{
		CountedBalance: decimal.NewFromInt(100),
	})
	assert.ErrorContains(t, err, "already closed")
}

func TestTerminalStatus(t *testing.T) {
	svc, _, _, dayID := newCashierFixture(t)

	status, err := svc.TerminalStatus(context.Background(), "T1")
	require.NoError(t, err)
	assert.False(t, status.HasOpenCashier)
	assert.Nil(t, status.Cashier)

	openTestSession(t, svc, dayID, "T1", 100)

	status, err = svc.TerminalStatus(context.Background(), "T1")
	require.NoError(t, err)
	assert.True(t, status.HasOpenCashier)
	require.NotNil(t, status.Cashier)
	assert.Equal(t, "T1", status.Cashier.TerminalID)
}

func TestCashierSummary(t *testing.T) {
	svc, repo, _, dayID := newCashierFixture(t)
	resp := openTestSession(t, svc, dayID, "T1", 100)
	sessionID := uuid.MustParse(resp.ID)

	cash, card := model.MethodCash, model.MethodCard
	repo.operations = append(repo.operations,
		model.CashierOperation{ID: uuid.New(), CashierSessionID: sessionID,
			OperationType: model.OpSale, PaymentMethod: &cash, Amount: decimal.NewFromInt(200)},
		model.CashierOperation{ID: uuid.New(), CashierSessionID: sessionID,
			OperationType: model.OpSale, PaymentMethod: &card, Amount: decimal.NewFromInt(80)},
		model.CashierOperation{ID: uuid.New(), CashierSessionID: sessionID,
			OperationType: model.OpWithdrawal, Amount: decimal.NewFromInt(50)},
	)

	sum, err := svc.Summary(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "280", sum.TotalSales.String())
	assert.Equal(t, "200", sum.SalesByMethod.Cash.String())
	assert.Equal(t, "80", sum.SalesByMethod.Card.String())
	assert.Equal(t, "50", sum.TotalWithdrawals.String())
	// 100 + 200 cash - 50 withdrawal = 250
	assert.Equal(t, "250", sum.ExpectedBalance.String())
}
