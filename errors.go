package webpush

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidSubscription is returned when a subscription's endpoint or
	// key material is malformed. The subscription is rejected before any
	// network or cryptographic work.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrPayloadTooLarge is returned when the payload does not fit in a
	// single encrypted record.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrEndpointGone is returned when the push service reports the
	// subscription no longer exists (HTTP 404 or 410).
	ErrEndpointGone = errors.New("subscription endpoint is gone")

	// ErrInvalidSigningKey is returned when the configured VAPID key pair
	// cannot be parsed or the public key does not match the private key.
	ErrInvalidSigningKey = errors.New("invalid signing key")

	// ErrSubscriptionNotFound is returned by stores when no subscription
	// exists under the requested id.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// WebPushError is implemented by all SDK errors.
type WebPushError interface {
	error
	WebPushError() // marker method
}

// ValidationError reports malformed inputs detected before any cryptographic
// or network work: wrong key sizes, oversized payloads, broken encodings.
type ValidationError struct {
	Field string // "endpoint", "p256dh", "auth", "payload"
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidSubscription {
		return e.Field != "payload"
	}
	if target == ErrPayloadTooLarge {
		return e.Field == "payload"
	}
	return false
}

// WebPushError implements the WebPushError interface.
func (e *ValidationError) WebPushError() {}

// CryptoError reports a cryptographic primitive failing despite valid
// inputs. It should not occur in normal operation; it fails only the single
// message it happened on.
type CryptoError struct {
	Stage string // "keygen", "agreement", "derive", "seal", "sign"
	Err   error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto failure at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *CryptoError) Unwrap() error {
	return e.Err
}

// WebPushError implements the WebPushError interface.
func (e *CryptoError) WebPushError() {}

// PushServiceError represents a non-success response from the push service.
type PushServiceError struct {
	StatusCode int
	Endpoint   string
}

func (e *PushServiceError) Error() string {
	return fmt.Sprintf("push service returned %d for %s", e.StatusCode, e.Endpoint)
}

// Is implements errors.Is for sentinel error matching.
func (e *PushServiceError) Is(target error) bool {
	if target == ErrEndpointGone {
		return e.StatusCode == 404 || e.StatusCode == 410
	}
	return false
}

// WebPushError implements the WebPushError interface.
func (e *PushServiceError) WebPushError() {}

// NetworkError represents a network-level failure reaching the push service,
// including request timeouts. It always classifies as Transient, never as
// Expired: only an explicit 404 or 410 declares a subscription dead.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// WebPushError implements the WebPushError interface.
func (e *NetworkError) WebPushError() {}
