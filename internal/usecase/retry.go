package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/metrics"
	"github.com/user/newsscrape-service/pkg/utils"
)

// RetryPolicy controls second-hop article fetch retries.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: 3 * time.Second, Multiplier: 2}
}

// newBackoff returns a jitter-free exponential schedule: BaseDelay,
// BaseDelay*Multiplier, BaseDelay*Multiplier^2, ...
func (p RetryPolicy) newBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.BaseDelay
	bo.Multiplier = p.Multiplier
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Duration(float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(p.MaxRetries)))
	bo.Reset()
	return bo
}

// Delays lists the pause before each retry.
func (p RetryPolicy) Delays() []time.Duration {
	bo := p.newBackoff()
	out := make([]time.Duration, 0, p.MaxRetries)
	for i := 0; i < p.MaxRetries; i++ {
		out = append(out, bo.NextBackOff())
	}
	return out
}

// withRetry runs op until it succeeds or the policy is exhausted. Permission
// errors and context cancellation are returned without retrying.
func withRetry[T any](ctx context.Context, p RetryPolicy, sleep utils.SleepFunc, onRetry func(attempt int, err error), op func(ctx context.Context) (T, error)) (T, error) {
	bo := p.newBackoff()
	for attempt := 0; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, repository.ErrPermissionDenied) || ctx.Err() != nil || attempt >= p.MaxRetries {
			return v, err
		}

		if onRetry != nil {
			onRetry(attempt+1, err)
		}
		metrics.RetriesTotal.Inc()
		if serr := sleep(ctx, bo.NextBackOff()); serr != nil {
			return v, serr
		}
	}
}
