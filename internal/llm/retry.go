package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider re-sends a request after transient failures, backing off
// exponentially with jitter. It is only installed when
// MATHBUDDY_LLM_MAX_ATTEMPTS is above one.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	badReplies := 0

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		kind := Kind(err)
		if kind == "invalid_response" || kind == "empty" {
			badReplies++
		}
		if !retryable(kind, badReplies) || attempt == attempts-1 {
			return nil, err
		}

		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

// retryable reports whether an error of the given kind is worth another
// attempt. A model that produced an unusable reply gets one second chance.
func retryable(kind string, badReplies int) bool {
	switch kind {
	case "timeout", "canceled", "max_tokens":
		return false
	case "invalid_response", "empty":
		return badReplies <= 1
	default:
		return true
	}
}

func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	d = math.Min(d, float64(r.config.MaxWait))
	d *= 0.8 + 0.4*rand.Float64() // ±20%
	return time.Duration(d)
}
