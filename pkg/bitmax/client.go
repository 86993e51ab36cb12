package bitmax

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	httpClient "bitmax/internal/http"
	"bitmax/internal/keyring"
	"bitmax/internal/ratelimit"
	"bitmax/internal/telemetry"
	"bitmax/pkg/core"
)

// Client sends REST requests and opens streaming sessions against one host.
// It is safe for concurrent use.
type Client struct {
	config  *core.Config
	http    *httpClient.Client
	keys    *keyring.KeyRing
	limiter *ratelimit.Limiter
	metrics *telemetry.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates a Client from config. A nil config uses DefaultConfig.
// Credentials are optional; without them only public requests succeed.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := applyOptions(opts...)
	logger := options.Logger
	if config.LogLevel != "" {
		level, err := zerolog.ParseLevel(config.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		logger = logger.Level(level)
	}

	http, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:   config.BaseURL,
		Timeout:   config.Timeout,
		UserAgent: config.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	http.SetLogger(logger.With().Str("component", "http").Logger())

	var keys *keyring.KeyRing
	if config.Credentials != nil {
		keys, err = keyring.New(config.Credentials)
		if err != nil {
			return nil, err
		}
		keys.SetLogger(logger)
	}

	return &Client{
		config:  config,
		http:    http,
		keys:    keys,
		limiter: ratelimit.New(config.RateLimitRequests, config.OrderRateLimitRequests, config.RateLimitPeriod),
		metrics: telemetry.New(options.MeterProvider),
		logger:  logger,
		now:     options.Clock,
	}, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *core.Config {
	return c.config
}

// SetAccountGroup records the account group used by group-scoped requests.
// Requests already in flight keep the group they started with.
func (c *Client) SetAccountGroup(group uint32) error {
	if c.keys == nil {
		return core.NewAuthError(core.ErrNoCredentials)
	}
	c.keys.SetAccountGroup(group)
	return nil
}

// AccountGroup returns the current account group and whether it is known.
func (c *Client) AccountGroup() (uint32, bool) {
	if c.keys == nil {
		return 0, false
	}
	return c.keys.Current().AccountGroup()
}

// DiscoverAccountGroup fetches the account info and stores its group.
func (c *Client) DiscoverAccountGroup(ctx context.Context) (core.AccountInfo, error) {
	info, err := Do(ctx, c, AccountInfo{})
	if err != nil {
		return info, err
	}
	c.keys.SetAccountGroup(info.AccountGroup)
	return info, nil
}

// RateLimitMetrics returns the client-side limiter counters. They stay zero
// when rate limiting is disabled.
func (c *Client) RateLimitMetrics() ratelimit.MetricsSnapshot {
	return c.limiter.Metrics()
}

// Close releases the HTTP transport. Sessions are closed separately.
func (c *Client) Close() error {
	return c.http.Close()
}
