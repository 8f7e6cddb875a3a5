package resolver

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// withRetry runs op under exponential backoff until it succeeds, the attempt
// budget is spent, or ctx is done. Errors wrapped with backoff.Permanent are
// returned immediately without further attempts.
func withRetry[T any](ctx context.Context, maxAttempts uint, initialInterval time.Duration, op func() (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	if initialInterval > 0 {
		bo.InitialInterval = initialInterval
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(maxAttempts),
	)
}
