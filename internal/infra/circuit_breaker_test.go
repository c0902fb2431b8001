package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCB(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

var errGateway = errors.New("gateway unavailable")

func fail() error    { return errGateway }
func succeed() error { return nil }

func TestCircuitBreakerTripsAfterThreshold(t *testing.T) {
	cb := testCB(time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errGateway)
	}
	assert.Equal(t, CBOpen, cb.State())

	// While open, calls fast-fail without invoking fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := testCB(time.Minute)

	require.ErrorIs(t, cb.Execute(fail), errGateway)
	require.ErrorIs(t, cb.Execute(fail), errGateway)
	require.NoError(t, cb.Execute(succeed))

	// The streak broke, so two more failures do not trip it
	require.ErrorIs(t, cb.Execute(fail), errGateway)
	require.ErrorIs(t, cb.Execute(fail), errGateway)
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb := testCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(fail), errGateway)
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close the circuit again
	require.NoError(t, cb.Execute(succeed))
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	cb := testCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(fail), errGateway)
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(fail), errGateway)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerStateString(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
