// Package vapid builds the Voluntary Application Server Identification
// authorization header for Web Push requests (RFC 8292).
//
// A header value has the form
//
//	vapid t=<jwt>, k=<application server public key>
//
// where the token is an ES256-signed JWT whose audience is the origin of the
// push resource and where the key is the sender's uncompressed P-256 public
// key in unpadded URL-safe base64.
package vapid

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pushvault/webpush-go/internal/crypto"
)

// TokenTTL is the lifetime of issued tokens. RFC 8292 permits up to
// 24 hours; issuing half that bounds the usefulness of a leaked token.
const TokenTTL = 12 * time.Hour

var (
	// ErrInvalidEndpoint is returned when the push endpoint has no scheme or host.
	ErrInvalidEndpoint = errors.New("invalid push endpoint")

	// ErrInvalidSubject is returned when the contact is neither a https URL
	// nor a mailto address.
	ErrInvalidSubject = errors.New("subject must be a https URL or mailto address")
)

// Audience derives the token audience from a push endpoint: the origin,
// scheme and host only. Tokens are only valid for the origin they were
// issued for, so this must be recomputed for every destination.
func Audience(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Authorization builds the header value authorizing a push to endpoint.
// The token is signed with the sender's key and expires at the given time.
func Authorization(endpoint, subject string, key *ecdsa.PrivateKey, expiration time.Time) (string, error) {
	audience, err := Audience(endpoint)
	if err != nil {
		return "", err
	}

	// Some push services accept an empty subject, but Apple's does not.
	if !strings.HasPrefix(subject, "https:") && !strings.HasPrefix(subject, "mailto:") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSubject, subject)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"aud": audience,
		"exp": expiration.Unix(),
		"sub": subject,
	})

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	publicKey, err := key.PublicKey.Bytes()
	if err != nil {
		return "", fmt.Errorf("export public key: %w", err)
	}

	return "vapid t=" + signed + ", k=" + crypto.ToBase64URL(publicKey), nil
}

// Verify checks a token against the sender's public key and the expected
// audience. It exists for tests and local tooling; in production the push
// service performs this check.
func Verify(token string, key *ecdsa.PublicKey, audience string) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)

	_, err := parser.Parse(token, func(*jwt.Token) (any, error) {
		return key, nil
	})
	return err
}
