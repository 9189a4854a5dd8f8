package webpush

import (
	"log/slog"
	"net/http"
	"time"
)

// Urgency directly impacts when the user agent wakes up for the message.
//
// https://www.rfc-editor.org/rfc/rfc8030.html#section-5.3
type Urgency string

const (
	// UrgencyVeryLow targets "on power and Wi-Fi".
	UrgencyVeryLow Urgency = "very-low"
	// UrgencyLow targets "on either power or Wi-Fi".
	UrgencyLow Urgency = "low"
	// UrgencyNormal targets "on neither power nor Wi-Fi".
	UrgencyNormal Urgency = "normal"
	// UrgencyHigh targets any device state including "low battery".
	UrgencyHigh Urgency = "high"
)

func (u Urgency) isValid() bool {
	switch u {
	case UrgencyVeryLow, UrgencyLow, UrgencyNormal, UrgencyHigh:
		return true
	}
	return false
}

const (
	defaultTTL         = 24 * time.Hour
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 8
)

// senderConfig holds configuration for the Sender.
type senderConfig struct {
	httpClient  *http.Client
	ttl         time.Duration
	urgency     Urgency
	topic       string
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

func defaultSenderConfig() senderConfig {
	return senderConfig{
		ttl:         defaultTTL,
		urgency:     UrgencyNormal,
		timeout:     defaultTimeout,
		concurrency: defaultConcurrency,
	}
}

// Option configures the Sender.
type Option func(*senderConfig)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *senderConfig) {
		c.httpClient = client
	}
}

// WithTTL sets how long the push service should retain an undelivered
// message. Default: 24 hours, rounded to whole seconds on the wire.
func WithTTL(ttl time.Duration) Option {
	return func(c *senderConfig) {
		c.ttl = ttl
	}
}

// WithUrgency sets the urgency hint sent with every message.
// Default: UrgencyNormal.
func WithUrgency(urgency Urgency) Option {
	return func(c *senderConfig) {
		c.urgency = urgency
	}
}

// WithTopic sets a topic so the push service collapses pending messages
// that share it. Default: none.
func WithTopic(topic string) Option {
	return func(c *senderConfig) {
		c.topic = topic
	}
}

// WithTimeout bounds each push request. A request that exceeds it counts as
// Transient, never Expired. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *senderConfig) {
		c.timeout = timeout
	}
}

// WithConcurrency sets how many subscriptions a broadcast processes at once.
// Default: 8.
func WithConcurrency(n int) Option {
	return func(c *senderConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger for per-subscription failures. Default: the
// slog default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *senderConfig) {
		c.logger = logger
	}
}
