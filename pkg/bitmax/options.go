package bitmax

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	Logger        zerolog.Logger
	MeterProvider metric.MeterProvider
	Clock         func() time.Time
}

// WithLogger returns an option that sets the logger for the client and its sessions.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMeterProvider returns an option that records request and stream metrics
// through provider. Without it the global provider is used.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *Options) {
		o.MeterProvider = provider
	}
}

// WithClock returns an option that replaces the wall clock used for signing
// timestamps and default order times.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}

func applyOptions(opts ...Option) *Options {
	o := &Options{
		Logger: zerolog.Nop(),
		Clock:  time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
