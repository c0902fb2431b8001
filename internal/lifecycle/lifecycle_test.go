package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

func TestComputeNoBusinessDay(t *testing.T) {
	state, actions := Compute(nil, nil, false)

	assert.Equal(t, NoBusinessDay, state)
	assert.Equal(t, "NO_BUSINESS_DAY", state.String())
	assert.True(t, actions.CanOpenDay)
	assert.False(t, actions.CanOpenTill)
	assert.False(t, actions.CanSell)
	assert.False(t, actions.CanCloseDay)
}

func TestComputeClosedDayCountsAsNone(t *testing.T) {
	day := &model.BusinessDay{Status: model.DayClosed}
	state, actions := Compute(day, nil, false)

	assert.Equal(t, NoBusinessDay, state)
	assert.True(t, actions.CanOpenDay)
}

func TestComputeDayOpenNoTill(t *testing.T) {
	day := &model.BusinessDay{Status: model.DayOpen}
	state, actions := Compute(day, nil, false)

	assert.Equal(t, DayOpenNoTill, state)
	assert.Equal(t, "DAY_OPEN_NO_TILL", state.String())
	assert.True(t, actions.CanOpenTill)
	assert.True(t, actions.CanCloseDay)
	assert.False(t, actions.CanOpenDay)
	assert.False(t, actions.CanSell)
}

func TestComputeDayCloseBlockedByOtherTerminals(t *testing.T) {
	// This terminal's till is closed but another terminal still has one open:
	// the day must not be closable yet.
	day := &model.BusinessDay{Status: model.DayOpen}
	state, actions := Compute(day, nil, true)

	assert.Equal(t, DayOpenNoTill, state)
	assert.True(t, actions.CanOpenTill)
	assert.False(t, actions.CanCloseDay)
}

func TestComputeDayOpenTillOpen(t *testing.T) {
	day := &model.BusinessDay{Status: model.DayOpen}
	sess := &model.CashierSession{Status: model.CashierOpen}
	state, actions := Compute(day, sess, true)

	assert.Equal(t, DayOpenTillOpen, state)
	assert.Equal(t, "DAY_OPEN_TILL_OPEN", state.String())
	assert.True(t, actions.CanSell)
	assert.True(t, actions.CanCloseTill)
	assert.False(t, actions.CanOpenTill)
	assert.False(t, actions.CanCloseDay)
}

func TestComputeClosedSessionIgnored(t *testing.T) {
	day := &model.BusinessDay{Status: model.DayOpen}
	sess := &model.CashierSession{Status: model.CashierClosed}
	state, actions := Compute(day, sess, false)

	assert.Equal(t, DayOpenNoTill, state)
	assert.True(t, actions.CanOpenTill)
}
