// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reembed

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// maxRetryDelay caps the wait between two embedding attempts.
const maxRetryDelay = 30 * time.Second

// backoff retries embedding requests, doubling the delay after each failed
// attempt up to ceiling.
type backoff struct {
	attempts int
	base     time.Duration
	ceiling  time.Duration
	logger   *slog.Logger
}

func newBackoff(attempts int, base time.Duration, logger *slog.Logger) backoff {
	if logger == nil {
		logger = slog.Default().With("component", "reembed")
	}
	return backoff{attempts: attempts, base: base, ceiling: maxRetryDelay, logger: logger}
}

// permanentError marks a failure that another attempt cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// permanent stops the retry loop and returns err as is.
func permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// delay returns the wait after the given failed attempt, counting from 1.
func (b backoff) delay(attempt int) time.Duration {
	d := b.base
	for range attempt - 1 {
		if d >= b.ceiling/2 {
			return b.ceiling
		}
		d *= 2
	}
	return min(d, b.ceiling)
}

// do runs op until it succeeds, returns a permanent error, the attempts run
// out, or ctx is done. The last failure is returned.
func (b backoff) do(ctx context.Context, op func(context.Context) error) error {
	if b.attempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= b.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 1 {
				b.logger.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		var stop *permanentError
		if errors.As(lastErr, &stop) {
			return stop.err
		}
		if attempt == b.attempts {
			break
		}

		wait := b.delay(attempt)
		b.logger.Debug("embedding failed, retrying",
			"attempt", attempt, "max_attempts", b.attempts, "wait", wait, "err", lastErr)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
