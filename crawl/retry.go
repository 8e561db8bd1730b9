package crawl

import (
	"context"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries:
// 10s, 20s, 30s. The target site throttles aggressively, so retries
// back off in long progressive steps rather than quick exponential ones.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{10 * time.Second, 20 * time.Second, 30 * time.Second}
}

// FetchWithRetry attempts to fetch a URL, retrying once per delay after
// a failure (len(delays)+1 total attempts). The logger function, if
// provided, is called for each retry attempt. A nil or empty delays
// slice means a single attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
