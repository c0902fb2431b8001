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

func newDayFixture() (BusinessDayService, *fakeDayRepo, *fakeCashierRepo) {
	dayRepo := newFakeDayRepo()
	cashierRepo := newFakeCashierRepo()
	svc := NewBusinessDayService(dayRepo, cashierRepo, cache.NewCurrentDay(nil, 0), nil, testStore)
	return svc, dayRepo, cashierRepo
}

func TestOpenBusinessDay(t *testing.T) {
	svc, _, _ := newDayFixture()

	resp, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.DayOpen, resp.Status)
	assert.Equal(t, testStore, resp.StoreID)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, resp.ID, current.ID)
}

func TestOpenBusinessDayAlreadyOpen(t *testing.T) {
	svc, _, _ := newDayFixture()

	_, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	assert.ErrorContains(t, err, "already open")
}

func TestOpenBusinessDayExplicitDate(t *testing.T) {
	svc, _, _ := newDayFixture()

	resp, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{Date: "2026-03-15"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", resp.Date)

	_, err = svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{Date: "15/03/2026"})
	assert.Error(t, err)
}

func TestCurrentWithNoOpenDay(t *testing.T) {
	svc, _, _ := newDayFixture()

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCloseBusinessDay(t *testing.T) {
	svc, _, _ := newDayFixture()
	closedBy := uuid.New()

	opened, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	require.NoError(t, err)
	dayID := uuid.MustParse(opened.ID)

	notes := "uneventful day"
	closed, err := svc.Close(context.Background(), dayID, closedBy, dto.CloseBusinessDayRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, model.DayClosed, closed.Status)
	require.NotNil(t, closed.ClosedBy)
	assert.Equal(t, closedBy.String(), *closed.ClosedBy)
	assert.NotNil(t, closed.ClosedAt)

	// After closing, no current day
	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCloseBusinessDayBlockedByOpenTill(t *testing.T) {
	svc, _, cashierRepo := newDayFixture()

	opened, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	require.NoError(t, err)
	dayID := uuid.MustParse(opened.ID)

	require.NoError(t, cashierRepo.CreateSession(context.Background(), &model.CashierSession{
		TerminalID:    "T1",
		BusinessDayID: dayID,
		Status:        model.CashierOpen,
	}))

	_, err = svc.Close(context.Background(), dayID, uuid.New(), dto.CloseBusinessDayRequest{})
	assert.ErrorContains(t, err, "close all tills")

	// Closing the till unblocks the day
	sess, err := cashierRepo.FindOpenByTerminal(context.Background(), "T1")
	require.NoError(t, err)
	sess.Status = model.CashierClosed
	require.NoError(t, cashierRepo.UpdateSession(context.Background(), sess))

	_, err = svc.Close(context.Background(), dayID, uuid.New(), dto.CloseBusinessDayRequest{})
	assert.NoError(t, err)
}

func TestCloseBusinessDayTwiceConflicts(t *testing.T) {
	svc, _, _ := newDayFixture()

	opened, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	require.NoError(t, err)
	dayID := uuid.MustParse(opened.ID)

	_, err = svc.Close(context.Background(), dayID, uuid.New(), dto.CloseBusinessDayRequest{})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), dayID, uuid.New(), dto.CloseBusinessDayRequest{})
	assert.ErrorContains(t, err, "already closed")
}

func TestBusinessDaySummary(t *testing.T) {
	svc, _, cashierRepo := newDayFixture()

	opened, err := svc.Open(context.Background(), uuid.New(), dto.OpenBusinessDayRequest{})
	require.NoError(t, err)
	dayID := uuid.MustParse(opened.ID)

	sess := &model.CashierSession{
		TerminalID:     "T1",
		BusinessDayID:  dayID,
		Status:         model.CashierOpen,
		InitialBalance: decimal.NewFromInt(100),
		OpenedAt:       time.Now(),
	}
	require.NoError(t, cashierRepo.CreateSession(context.Background(), sess))

	// Two payments of the same order produce two SALE rows with one reference
	orderID := uuid.New()
	cash, pix := model.MethodCash, model.MethodPix
	cashierRepo.operations = append(cashierRepo.operations,
		model.CashierOperation{ID: uuid.New(), CashierSessionID: sess.ID,
			OperationType: model.OpSale, PaymentMethod: &cash,
			Amount: decimal.NewFromInt(60), ReferenceID: &orderID},
		model.CashierOperation{ID: uuid.New(), CashierSessionID: sess.ID,
			OperationType: model.OpSale, PaymentMethod: &pix,
			Amount: decimal.NewFromInt(40), ReferenceID: &orderID},
	)

	sum, err := svc.Summary(context.Background(), dayID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.TotalOrders)
	assert.Equal(t, "100", sum.TotalSales.String())
	assert.Equal(t, "60", sum.SalesByMethod.Cash.String())
	assert.Equal(t, "40", sum.SalesByMethod.Pix.String())
	assert.Equal(t, 1, sum.SessionsOpened)
	assert.Equal(t, 1, sum.SessionsOpen)
}
