package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// retryCompleter retries transient overload errors with exponential
// backoff. All other failures are returned immediately.
type retryCompleter struct {
	inner       Completer
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	logger      *slog.Logger
}

func wrapWithRetry(inner Completer, cfg Config) Completer {
	if cfg.MaxAttempts <= 1 {
		return inner
	}
	return &retryCompleter{
		inner:       inner,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
		logger:      slog.Default(),
	}
}

func isOverloaded(err error) bool {
	var oe *overloadError
	return errors.As(err, &oe)
}

func (r *retryCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		text, err := r.inner.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isOverloaded(err) {
			return "", err
		}
		if attempt == r.maxAttempts {
			break
		}

		delay := r.backoffDelay(attempt)
		r.logger.Warn("generation attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %v", ErrUpstreamUnavailable, r.maxAttempts, lastErr)
}

func (r *retryCompleter) backoffDelay(attempt int) time.Duration {
	delay := r.baseDelay << (attempt - 1)
	if delay > r.maxDelay {
		return r.maxDelay
	}
	return delay
}
