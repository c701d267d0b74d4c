// Package fetch - retry.go provides retry with backoff for rate-limited sources.
package fetch

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Retry defaults. Government endpoints rate-limit aggressively; waits are
// long on purpose.
const (
	MaxRetries        = 5
	InitialRetryDelay = 60 * time.Second
	MaxRetryDelay     = 300 * time.Second
)

var (
	retryAfterPattern = regexp.MustCompile(`retry after (\d+)s`)
	httpStatusPattern = regexp.MustCompile(`HTTP status (\d{3})`)
)

// RetryPolicy controls how failed requests are retried.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// Sleep is replaceable in tests. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy returns the standard policy for recall sources.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:   MaxRetries,
		InitialDelay: InitialRetryDelay,
		MaxDelay:     MaxRetryDelay,
	}
}

// IsRetryable reports whether an error is worth retrying: a rate-limit
// rejection or a transient server error.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if m := httpStatusPattern.FindStringSubmatch(msg); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code == 429 || code >= 500
	}
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "rate limit") || strings.Contains(msg, "429")
}

// RetryAfterHint extracts an explicit wait duration from a rate-limit error
// message ("... retry after 42s ..."), if the service provided one.
func RetryAfterHint(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	m := retryAfterPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	secs, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Do runs op, retrying rate-limited and transient failures with exponential
// backoff. Non-retryable errors are returned immediately so callers can apply
// their own per-record skip handling.
func (p *RetryPolicy) Do(ctx context.Context, op func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	delay := p.InitialDelay
	var err error
	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == p.MaxRetries-1 {
			break
		}

		wait := delay
		if hint, ok := RetryAfterHint(err); ok {
			wait = hint
		} else {
			delay = minDuration(delay*2, p.MaxDelay)
		}

		log.Printf("Warning: rate limit hit, retrying in %s (attempt %d/%d)", wait, attempt+1, p.MaxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		sleep(wait)
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", p.MaxRetries, err)
}

// URLWithRetry fetches a URL, retrying on rate limits and server errors.
func URLWithRetry(ctx context.Context, urlStr string, opts *Options, policy *RetryPolicy) (*Result, error) {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}

	var result *Result
	err := policy.Do(ctx, func() error {
		var fetchErr error
		result, fetchErr = URL(ctx, urlStr, opts)
		return fetchErr
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
