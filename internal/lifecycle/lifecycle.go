// Package lifecycle implements the store state machine gating day/till actions.
//
// The guard is advisory: it mirrors the invariants the services enforce so the
// UI can enable/disable actions from one consistent snapshot, but the services
// remain the authority and re-check every transition.
package lifecycle

import "github.com/costadanilofreitas/chefia-pos-sub001/internal/model"

// State is the store-wide lifecycle position computed from freshly fetched
// entities (never from independently cached flags).
type State int

const (
	NoBusinessDay State = iota // no OPEN day exists
	DayOpenNoTill              // day OPEN, no till OPEN for this terminal
	DayOpenTillOpen            // day OPEN, this terminal's till OPEN
)

func (s State) String() string {
	switch s {
	case NoBusinessDay:
		return "NO_BUSINESS_DAY"
	case DayOpenNoTill:
		return "DAY_OPEN_NO_TILL"
	case DayOpenTillOpen:
		return "DAY_OPEN_TILL_OPEN"
	default:
		return "unknown"
	}
}

// Actions enumerates what the current state permits.
type Actions struct {
	CanOpenDay   bool `json:"can_open_day"`
	CanCloseDay  bool `json:"can_close_day"`
	CanOpenTill  bool `json:"can_open_till"`
	CanCloseTill bool `json:"can_close_till"`
	CanSell      bool `json:"can_sell"`
}

// Compute derives the state for one terminal from the current business day
// (nil when none is open), that terminal's open session (nil when none), and
// whether any session under the day remains open on any terminal.
func Compute(day *model.BusinessDay, terminalSession *model.CashierSession, anyTillOpen bool) (State, Actions) {
	if day == nil || day.Status != model.DayOpen {
		return NoBusinessDay, Actions{CanOpenDay: true}
	}
	if terminalSession != nil && terminalSession.Status == model.CashierOpen {
		return DayOpenTillOpen, Actions{CanCloseTill: true, CanSell: true}
	}
	return DayOpenNoTill, Actions{
		CanOpenTill: true,
		// Closing the day requires every till under it to be closed,
		// not just this terminal's.
		CanCloseDay: !anyTillOpen,
	}
}
