package common

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type (
	RetryPolicyFunc func(attempt uint32, err error) bool
	NextDelayFunc   func(attempt uint32) time.Duration
)

type RetryConfig struct {
	ShouldRetry RetryPolicyFunc
	NextDelay   NextDelayFunc
}

type RetryRunner struct {
	config RetryConfig
	clock  clockwork.Clock
	logger zerolog.Logger
}

func NewRetryRunner(config RetryConfig, logger zerolog.Logger) RetryRunner {
	return NewRetryRunnerWithClock(config, clockwork.NewRealClock(), logger)
}

func NewRetryRunnerWithClock(config RetryConfig, clock clockwork.Clock, logger zerolog.Logger) RetryRunner {
	return RetryRunner{
		config: config,
		clock:  clock,
		logger: logger,
	}
}

// DefaultFetchRetryConfig is used for remote fetches: a few attempts with exponential delay,
// no retry for errors marked as permanent.
func DefaultFetchRetryConfig(permanent ...error) RetryConfig {
	return RetryConfig{
		ShouldRetry: ComposeRetryPolicies(LimitRetries(4), DoNotRetryIf(permanent...)),
		NextDelay:   DelayExponential(200*time.Millisecond, 5*time.Second),
	}
}

func (r *RetryRunner) Do(ctx context.Context, action func(ctx context.Context) error) error {
	attemptNumber := uint32(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			attemptNumber++
			err := action(ctx)

			if err == nil || !r.config.ShouldRetry(attemptNumber, err) {
				return err
			}

			delay := r.config.NextDelay(attemptNumber)
			r.logger.Warn().Err(err).Msgf("operation failed, retrying in %s (try %d)", delay, attemptNumber)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.clock.After(delay):
			}
		}
	}
}

func LimitRetries(maxRetries uint32) RetryPolicyFunc {
	return func(attemptNumber uint32, _ error) bool {
		return attemptNumber < maxRetries
	}
}

func ComposeRetryPolicies(policies ...RetryPolicyFunc) RetryPolicyFunc {
	return func(attempt uint32, err error) bool {
		for _, policy := range policies {
			if !policy(attempt, err) {
				return false
			}
		}
		return true
	}
}

func DoNotRetryIf(nonRetryable ...error) RetryPolicyFunc {
	return func(attemptNumber uint32, err error) bool {
		for _, nonRetryableErr := range nonRetryable {
			if errors.Is(err, nonRetryableErr) {
				return false
			}
		}
		return true
	}
}

func DelayExponential(baseDelay, maxDelay time.Duration) NextDelayFunc {
	if baseDelay > maxDelay {
		log.Panicf("baseDelay %s > maxDelay %s", baseDelay, maxDelay)
	}

	return func(attemptNumber uint32) time.Duration {
		result := baseDelay
		for range attemptNumber - 1 {
			result *= 2
			if result >= maxDelay {
				return maxDelay
			}
		}
		return result
	}
}
