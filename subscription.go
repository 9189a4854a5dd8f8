package webpush

import (
	"errors"

	"github.com/pushvault/webpush-go/internal/crypto"
)

var errEmptyEndpoint = errors.New("endpoint is empty")

// Keys are the base64-encoded key material issued by the user agent.
type Keys struct {
	// Auth is the 16-byte authentication secret.
	Auth string `json:"auth"`
	// P256dh is the 65-byte uncompressed P-256 public key.
	P256dh string `json:"p256dh"`
}

// Subscription represents a PushSubscription issued by a push service. It is
// immutable once created; this package only reads it and, via a
// [SubscriptionStore], requests its deletion when the push service reports
// it gone.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	Keys     Keys   `json:"keys"`
}

// Validate checks the subscription without performing any cryptographic or
// network work. It returns a *ValidationError describing the first problem
// found.
func (s *Subscription) Validate() error {
	_, _, err := s.keyMaterial()
	return err
}

// keyMaterial decodes and size-checks the subscription's key material.
func (s *Subscription) keyMaterial() (clientPublicKey, authSecret []byte, err error) {
	if s.Endpoint == "" {
		return nil, nil, &ValidationError{Field: "endpoint", Err: errEmptyEndpoint}
	}

	clientPublicKey, err = crypto.DecodeKeyMaterial(s.Keys.P256dh)
	if err != nil {
		return nil, nil, &ValidationError{Field: "p256dh", Err: err}
	}

	authSecret, err = crypto.DecodeKeyMaterial(s.Keys.Auth)
	if err != nil {
		return nil, nil, &ValidationError{Field: "auth", Err: err}
	}

	// ValidateMessage re-checks the payload at encryption time; here only
	// the key material is in scope.
	if err := crypto.ValidateMessage(clientPublicKey, authSecret, nil); err != nil {
		field := "p256dh"
		if errors.Is(err, crypto.ErrInvalidAuthSecretSize) {
			field = "auth"
		}
		return nil, nil, &ValidationError{Field: field, Err: err}
	}

	return clientPublicKey, authSecret, nil
}
