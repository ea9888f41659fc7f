package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retrying re-sends requests that fail transiently. An invalid response
// is retried once; a rate limit honours RetryAfter.
type retrying struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry wraps p with backoff retries.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrying{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidSeen := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.cfg.wait(attempt-1, err)); serr != nil {
				return nil, serr
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, err
}

// wait is the pause after the given zero-based failed attempt, with
// twenty percent jitter either way.
func (c RetryConfig) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := float64(c.InitialWait)
	for range attempt {
		d *= c.Multiplier
	}
	if c.MaxWait > 0 && d > float64(c.MaxWait) {
		d = float64(c.MaxWait)
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
