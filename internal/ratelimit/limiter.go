// Package ratelimit is an opt-in client-side limiter for REST calls.
// The exchange enforces its own limits; this only smooths bursts.
package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Class selects the bucket a request draws from.
type Class int

const (
	// ClassGeneral covers every request.
	ClassGeneral Class = iota
	// ClassOrder covers order placement and cancellation, in addition to ClassGeneral.
	ClassOrder
)

// String returns "general" or "order".
func (c Class) String() string {
	if c == ClassOrder {
		return "order"
	}
	return "general"
}

// Limiter enforces a general budget and an optional tighter order budget.
// A nil *Limiter allows everything.
type Limiter struct {
	general *rate.Limiter
	orders  *rate.Limiter
	metrics Metrics
}

// Metrics tracks statistics about rate limiter usage.
type Metrics struct {
	totalRequests   atomic.Int64
	allowedRequests atomic.Int64
	deniedRequests  atomic.Int64
}

// New returns a limiter allowing requests per period overall and orders per
// period for ClassOrder. orders of zero leaves order calls to the general budget.
// It returns nil when requests is zero.
func New(requests, orders int, period time.Duration) *Limiter {
	if requests <= 0 {
		return nil
	}
	l := &Limiter{general: newBucket(requests, period)}
	if orders > 0 {
		l.orders = newBucket(orders, period)
	}
	return l
}

func newBucket(requests int, period time.Duration) *rate.Limiter {
	rps := float64(requests) / period.Seconds()
	return rate.NewLimiter(rate.Limit(rps), requests)
}

// Wait blocks until the buckets for class allow a request or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context, class Class) error {
	if l == nil {
		return nil
	}
	l.metrics.totalRequests.Add(1)
	if class == ClassOrder && l.orders != nil {
		if err := l.orders.Wait(ctx); err != nil {
			l.metrics.deniedRequests.Add(1)
			return fmt.Errorf("%s rate limit: %w", class, err)
		}
	}
	if err := l.general.Wait(ctx); err != nil {
		l.metrics.deniedRequests.Add(1)
		return fmt.Errorf("%s rate limit: %w", ClassGeneral, err)
	}
	l.metrics.allowedRequests.Add(1)
	return nil
}

// Metrics returns a snapshot of the current rate limiter statistics.
func (l *Limiter) Metrics() MetricsSnapshot {
	if l == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		TotalRequests:   l.metrics.totalRequests.Load(),
		AllowedRequests: l.metrics.allowedRequests.Load(),
		DeniedRequests:  l.metrics.deniedRequests.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of rate limiter statistics.
type MetricsSnapshot struct {
	// TotalRequests is the total number of rate limit checks performed.
	TotalRequests int64
	// AllowedRequests is the number of requests that were allowed.
	AllowedRequests int64
	// DeniedRequests is the number of requests that were denied.
	DeniedRequests int64
}
