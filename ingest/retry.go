package ingest

import (
	"context"
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// InsertFunc is the signature for a chunk insert function.
type InsertFunc func(ctx context.Context, records []*cveanalyzer.CVERecord) error

// DefaultRetryDelays returns the linear backoff delays between insert
// attempts: 2s, 4s, 6s. Attempts = len(delays); the final delay is never
// slept because the last failure gives up immediately.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}
}

// insertWithRetry attempts to insert a chunk with bounded retries and linear
// backoff. Validation errors (EINVALID) abort immediately: a malformed record
// stays malformed no matter how often it is resent.
func insertWithRetry(ctx context.Context, insert InsertFunc, records []*cveanalyzer.CVERecord, delays []time.Duration) error {
	attempts := len(delays)
	if attempts == 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := insert(ctx, records)
		if err == nil {
			return nil
		}
		if cveanalyzer.ErrorCode(err) == cveanalyzer.EINVALID {
			return err
		}
		lastErr = err

		if attempt >= attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
