package bionic

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RateLimitedTransformer wraps a Transformer with a token bucket holding at
// most rpm tokens. Tokens refill continuously at rpm per minute.
type RateLimitedTransformer struct {
	transformer Transformer
	logger      *logrus.Entry
	rpm         float64
	interval    time.Duration // time to earn one token

	mu       sync.Mutex
	tokens   float64
	lastFill time.Time
}

// NewRateLimitedTransformer allows at most rpm transformations per minute
// through t. A non-positive rpm returns t unchanged.
func NewRateLimitedTransformer(t Transformer, rpm int, logger *logrus.Entry) Transformer {
	if rpm <= 0 {
		return t
	}
	return &RateLimitedTransformer{
		transformer: t,
		logger:      logger,
		rpm:         float64(rpm),
		interval:    time.Minute / time.Duration(rpm),
		tokens:      float64(rpm),
		lastFill:    time.Now(),
	}
}

func (r *RateLimitedTransformer) Transform(ctx context.Context, content string, controls Controls) (string, error) {
	if err := r.wait(ctx); err != nil {
		r.logger.WithError(err).Warn("Bionic request abandoned while throttled")
		return "", &TransformationError{Err: err}
	}
	return r.transformer.Transform(ctx, content, controls)
}

// wait takes a token, sleeping until one is earned when the bucket is empty.
func (r *RateLimitedTransformer) wait(ctx context.Context) error {
	throttled := false
	for {
		delay := r.take()
		if delay == 0 {
			return nil
		}
		if !throttled {
			throttled = true
			r.logger.WithField("wait", delay.String()).Debug("Bionic requests throttled")
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// take consumes a token and returns zero, or returns how long until the
// next token is available.
func (r *RateLimitedTransformer) take() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.tokens += now.Sub(r.lastFill).Minutes() * r.rpm
	if r.tokens > r.rpm {
		r.tokens = r.rpm
	}
	r.lastFill = now

	if r.tokens >= 1 {
		r.tokens--
		return 0
	}
	return time.Duration((1 - r.tokens) * float64(r.interval))
}
