package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
)

// All tests run with rdb == nil: the in-process single-flight layer is what
// needs unit coverage, the Redis layer is a plain GET/SET with TTL.

func TestGetFetchesAndReturnsDay(t *testing.T) {
	c := NewCurrentDay(nil, 0)
	day := &model.BusinessDay{StoreID: "store-1", Status: model.DayOpen}

	got, err := c.Get(context.Background(), "store-1", func(context.Context) (*model.BusinessDay, error) {
		return day, nil
	})

	require.NoError(t, err)
	assert.Equal(t, day, got)
}

func TestGetNilDayIsValid(t *testing.T) {
	// "No open day" travels through the cache as a nil day with nil error.
	c := NewCurrentDay(nil, 0)

	got, err := c.Get(context.Background(), "store-1", func(context.Context) (*model.BusinessDay, error) {
		return nil, nil
	})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetCollapsesConcurrentFetches(t *testing.T) {
	c := NewCurrentDay(nil, 0)
	day := &model.BusinessDay{StoreID: "store-1", Status: model.DayOpen}

	var fetches int64
	gate := make(chan struct{})
	fetch := func(context.Context) (*model.BusinessDay, error) {
		atomic.AddInt64(&fetches, 1)
		<-gate
		return day, nil
	}

	const n = 20
	var wg sync.WaitGroup
	started := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			got, err := c.Get(context.Background(), "store-1", fetch)
			assert.NoError(t, err)
			assert.Equal(t, day, got)
		}()
	}
	for i := 0; i < n; i++ {
		<-started
	}
	close(gate)
	wg.Wait()

	// Without Redis every Get misses, so the in-flight map is the only thing
	// preventing 20 fetches. A small number of extra fetches can slip in
	// before the first caller registers.
	assert.Less(t, atomic.LoadInt64(&fetches), int64(n))
}

func TestGetDoesNotCacheErrors(t *testing.T) {
	c := NewCurrentDay(nil, 0)

	calls := 0
	_, err := c.Get(context.Background(), "store-1", func(context.Context) (*model.BusinessDay, error) {
		calls++
		return nil, assert.AnError
	})
	require.Error(t, err)

	_, err = c.Get(context.Background(), "store-1", func(context.Context) (*model.BusinessDay, error) {
		calls++
		return &model.BusinessDay{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestInvalidateWithoutRedisIsNoop(t *testing.T) {
	c := NewCurrentDay(nil, 0)
	// Must not panic with a nil client
	c.Invalidate(context.Background(), "store-1")
}
