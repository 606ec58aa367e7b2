// Package ratelimit paces outgoing API requests.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging.
// A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a limiter allowing requestsPerSecond requests with a burst of
// one request per whole second of rate (minimum 1).
// A non-positive rate disables limiting and returns nil.
func New(name string, requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
	}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if !l.limiter.Allow() {
		slog.Debug("Waiting for rate limiter", "limiter", l.name)
		if err := l.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
		}
	}
	return nil
}

// Name returns the limiter name, or "unlimited" for a nil limiter.
func (l *Limiter) Name() string {
	if l == nil {
		return "unlimited"
	}
	return l.name
}
