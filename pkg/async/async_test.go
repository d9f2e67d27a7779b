package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmedash/acmedash/pkg/async"
)

func TestAsyncAwait(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	result, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestAsyncPropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := async.Async(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, boom)
}

func TestAsyncCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	f := async.Async(ctx, func(ctx context.Context) (int, error) {
		ran.Store(true)
		return 1, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran.Load(), "fn must not run when context is pre-canceled")
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in argument order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		slow := async.Async(ctx, func(ctx context.Context) (string, error) {
			time.Sleep(20 * time.Millisecond)
			return "slow", nil
		})
		fast := async.Async(ctx, func(ctx context.Context) (string, error) {
			return "fast", nil
		})

		results, err := async.WaitAll(slow, fast)
		require.NoError(t, err)
		assert.Equal(t, []string{"slow", "fast"}, results)
	})

	t.Run("one failure fails the whole aggregate", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		boom := errors.New("read failed")
		ok := async.Async(ctx, func(ctx context.Context) (int, error) { return 7, nil })
		bad := async.Async(ctx, func(ctx context.Context) (int, error) { return 0, boom })

		results, err := async.WaitAll(ok, bad)
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, results, "no partial results on failure")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results, err := async.WaitAll[int]()
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
