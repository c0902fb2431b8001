package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

func newLoyaltyFixture(t *testing.T) (LoyaltyService, *fakeCustomerRepo, uuid.UUID) {
	t.Helper()
	repo := newFakeCustomerRepo()
	svc := NewLoyaltyService(repo)

	resp, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{Name: "Carlos"})
	require.NoError(t, err)
	return svc, repo, uuid.MustParse(resp.ID)
}

func accrue(repo *fakeCustomerRepo, customerID uuid.UUID, points int64) {
	repo.entries = append(repo.entries, model.LoyaltyEntry{
		ID:         uuid.New(),
		CustomerID: customerID,
		EntryType:  model.LoyaltyAccrual,
		Points:     points,
		CreatedAt:  time.Now(),
	})
}

func TestRedeemPoints(t *testing.T) {
	svc, repo, customerID := newLoyaltyFixture(t)
	accrue(repo, customerID, 100)

	resp, err := svc.Redeem(context.Background(), customerID, dto.RedeemPointsRequest{
		Points:      40,
		Description: "free dessert",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60), resp.Balance)

	history, err := svc.History(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.LoyaltyRedemption, history[1].EntryType)
	assert.Equal(t, int64(-40), history[1].Points)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	svc, repo, customerID := newLoyaltyFixture(t)
	accrue(repo, customerID, 30)

	_, err := svc.Redeem(context.Background(), customerID, dto.RedeemPointsRequest{Points: 40})
	assert.ErrorContains(t, err, "insufficient points balance")

	// A failed redemption leaves the ledger untouched
	balance, err := repo.Balance(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
}

func TestRedeemNonPositivePoints(t *testing.T) {
	svc, _, customerID := newLoyaltyFixture(t)

	_, err := svc.Redeem(context.Background(), customerID, dto.RedeemPointsRequest{Points: 0})
	assert.ErrorContains(t, err, "must be positive")
}

func TestRedeemUnknownCustomer(t *testing.T) {
	svc, _, _ := newLoyaltyFixture(t)

	_, err := svc.Redeem(context.Background(), uuid.New(), dto.RedeemPointsRequest{Points: 10})
	assert.ErrorContains(t, err, "customer not found")
}

func TestCustomerBalanceFromLedger(t *testing.T) {
	svc, repo, customerID := newLoyaltyFixture(t)
	accrue(repo, customerID, 50)
	accrue(repo, customerID, 25)

	_, err := svc.Redeem(context.Background(), customerID, dto.RedeemPointsRequest{Points: 20})
	require.NoError(t, err)

	resp, err := svc.GetCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(55), resp.Balance)
}
