package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRetryRunner(t *testing.T) {
	t.Parallel()

	errTemporary := errors.New("temporary")
	errPermanent := errors.New("permanent")

	newRunner := func() RetryRunner {
		return NewRetryRunner(RetryConfig{
			ShouldRetry: ComposeRetryPolicies(LimitRetries(3), DoNotRetryIf(errPermanent)),
			NextDelay:   DelayExponential(time.Millisecond, 4*time.Millisecond),
		}, zerolog.Nop())
	}

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		t.Parallel()

		runner := newRunner()
		attempts := 0
		err := runner.Do(t.Context(), func(context.Context) error {
			attempts++
			if attempts < 3 {
				return errTemporary
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, attempts)
	})

	t.Run("GivesUp", func(t *testing.T) {
		t.Parallel()

		runner := newRunner()
		attempts := 0
		err := runner.Do(t.Context(), func(context.Context) error {
			attempts++
			return errTemporary
		})
		require.ErrorIs(t, err, errTemporary)
		require.Equal(t, 3, attempts)
	})

	t.Run("PermanentError", func(t *testing.T) {
		t.Parallel()

		runner := newRunner()
		attempts := 0
		err := runner.Do(t.Context(), func(context.Context) error {
			attempts++
			return errPermanent
		})
		require.ErrorIs(t, err, errPermanent)
		require.Equal(t, 1, attempts)
	})

	t.Run("Cancelled", func(t *testing.T) {
		t.Parallel()

		runner := newRunner()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := runner.Do(ctx, func(context.Context) error {
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryRunnerWaitsForDelay(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	runner := NewRetryRunnerWithClock(RetryConfig{
		ShouldRetry: LimitRetries(2),
		NextDelay:   DelayExponential(time.Hour, time.Hour),
	}, clock, zerolog.Nop())

	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- runner.Do(t.Context(), func(context.Context) error {
			attempts++
			if attempts == 1 {
				return errors.New("temporary")
			}
			return nil
		})
	}()

	require.NoError(t, clock.BlockUntilContext(t.Context(), 1))
	clock.Advance(time.Hour)
	require.NoError(t, <-done)
	require.Equal(t, 2, attempts)
}

func TestDelayExponential(t *testing.T) {
	t.Parallel()

	next := DelayExponential(100*time.Millisecond, time.Second)
	require.Equal(t, 100*time.Millisecond, next(1))
	require.Equal(t, 200*time.Millisecond, next(2))
	require.Equal(t, 400*time.Millisecond, next(3))
	require.Equal(t, time.Second, next(5))
	require.Equal(t, time.Second, next(30))
}
