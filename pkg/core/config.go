package core

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production REST host.
const DefaultBaseURL = "https://bitmax.io"

// Credentials holds a BitMax API key pair.
type Credentials struct {
	// PublicKey is sent in the x-auth-key header.
	PublicKey string `json:"public_key" yaml:"public_key" validate:"required"`
	// PrivateKey is the base64 encoded secret used for signing.
	PrivateKey string `json:"private_key" yaml:"private_key" validate:"required,base64"`
	// AccountGroup is optional; it can be discovered with an account info request.
	AccountGroup *uint32 `json:"account_group,omitempty" yaml:"account_group,omitempty"`
}

// StreamConfig controls streaming sessions.
type StreamConfig struct {
	// URL overrides the streaming host; derived from BaseURL when empty.
	URL string `json:"url" yaml:"url" validate:"omitempty,url"`
	// HandshakeTimeout bounds the websocket upgrade.
	HandshakeTimeout time.Duration `json:"handshake_timeout" yaml:"handshake_timeout" validate:"min=0"`
	// BufferSize is the number of inbound frames queued ahead of Receive.
	BufferSize int `json:"buffer_size" yaml:"buffer_size" validate:"min=0"`
	// AutoPong makes the session answer exchange pings itself.
	AutoPong bool `json:"auto_pong" yaml:"auto_pong"`
}

// Config contains all configuration options for a client.
// Rate limiting is disabled unless RateLimitRequests is positive.
type Config struct {
	BaseURL     string       `json:"base_url" yaml:"base_url" validate:"required,url"`
	UserAgent   string       `json:"user_agent" yaml:"user_agent" validate:"required"`
	Credentials *Credentials `json:"credentials,omitempty" yaml:"credentials,omitempty"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"min=1ms"`

	RateLimitRequests      int           `json:"rate_limit_requests" yaml:"rate_limit_requests" validate:"min=0"`
	OrderRateLimitRequests int           `json:"order_rate_limit_requests" yaml:"order_rate_limit_requests" validate:"min=0"`
	RateLimitPeriod        time.Duration `json:"rate_limit_period" yaml:"rate_limit_period" validate:"min=0"`

	Stream StreamConfig `json:"stream" yaml:"stream"`

	// LogLevel caps the client logger. Empty keeps the level of the logger
	// passed with bitmax.WithLogger.
	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with defaults for the production host.
// Default values: 10s timeout, no rate limiting, 10s handshake timeout, 256 buffered frames.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "bitmax-go",
		Timeout:   10 * time.Second,
		Stream: StreamConfig{
			HandshakeTimeout: 10 * time.Second,
			BufferSize:       256,
		},
	}
}

var validate = validator.New()

// Validate checks the configuration, including the credentials when set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if (c.RateLimitRequests > 0 || c.OrderRateLimitRequests > 0) && c.RateLimitPeriod <= 0 {
		return errors.New("RateLimitPeriod must be positive when rate limiting is enabled")
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return config, nil
}

// StreamURL returns the websocket host, derived from BaseURL unless overridden.
func (c *Config) StreamURL() string {
	if c.Stream.URL != "" {
		return strings.TrimRight(c.Stream.URL, "/")
	}
	base := strings.TrimRight(c.BaseURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithBaseURL sets the REST host and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit enables client-side rate limiting and returns the config for chaining.
// orders bounds order placement and cancellation separately; zero leaves it unbounded.
func (c *Config) WithRateLimit(requests, orders int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.OrderRateLimitRequests = orders
	c.RateLimitPeriod = period
	return c
}

// WithAutoPong makes streaming sessions answer pings and returns the config for chaining.
func (c *Config) WithAutoPong(enabled bool) *Config {
	c.Stream.AutoPong = enabled
	return c
}
