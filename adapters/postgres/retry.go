package postgres

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"net"
	"strings"
	"time"

	"floorcast/internal/config"
	apperrors "floorcast/internal/errors"
)

// retrier executes store operations with bounded retries and
// exponential backoff. Only transient failures are retried; a query
// that fails on its own merits fails immediately.
type retrier struct {
	maxAttempts int
	delay       time.Duration
	backoff     float64
}

func newRetrier(cfg config.RetryConfig) retrier {
	r := retrier{
		maxAttempts: cfg.MaxAttempts,
		delay:       cfg.InitialDelay,
		backoff:     cfg.BackoffBase,
	}
	if r.maxAttempts < 1 {
		r.maxAttempts = 1
	}
	if r.delay <= 0 {
		r.delay = time.Second
	}
	if r.backoff < 1 {
		r.backoff = 2
	}
	return r
}

// do runs fn until it succeeds, fails non-transiently, or exhausts the
// attempt budget. Backoff delay is delay * backoff^(attempt-1).
func (r retrier) do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) || attempt == r.maxAttempts {
			break
		}

		wait := time.Duration(float64(r.delay) * math.Pow(r.backoff, float64(attempt-1)))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return apperrors.StoreError("query failed", lastErr)
}

// isTransient classifies connection-level failures worth retrying.
// sql.ErrNoRows is never transient: absence is data, not failure.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"timeout",
		"too many connections",
		"the database system is starting up",
	} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
