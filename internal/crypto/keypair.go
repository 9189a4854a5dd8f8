package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for key and salt generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// GenerateMessageKey creates a fresh P-256 key pair for a single message.
// The key is never reused; it is the forward-secrecy boundary of the scheme.
func GenerateMessageKey() (*ecdh.PrivateKey, error) {
	key, err := ecdh.P256().GenerateKey(randSource())
	if err != nil {
		return nil, fmt.Errorf("generate message key: %w", err)
	}
	return key, nil
}

// GenerateSalt creates a fresh 16-byte record salt for a single message.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(randSource(), salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// ParsePublicKey parses a 65-byte uncompressed P-256 point into an ECDH
// public key, validating size and prefix first.
func ParsePublicKey(raw []byte) (*ecdh.PublicKey, error) {
	if len(raw) != PublicKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(raw), PublicKeySize)
	}
	if raw[0] != uncompressedPointPrefix {
		return nil, ErrInvalidPublicKeyPrefix
	}

	pub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return pub, nil
}

// SharedSecret computes the ECDH shared secret between a private key and a
// peer public key.
func SharedSecret(priv *ecdh.PrivateKey, peer *ecdh.PublicKey) ([]byte, error) {
	secret, err := priv.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("key agreement: %w", err)
	}
	return secret, nil
}

// GenerateSigningKey creates a new P-256 ECDSA key pair for signing
// authorization tokens.
func GenerateSigningKey() (*ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), randSource())
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return key, nil
}

// ParseSigningKey reconstructs an ECDSA private key from a raw 32-byte
// scalar, as stored in configuration.
func ParseSigningKey(raw []byte) (*ecdsa.PrivateKey, error) {
	if len(raw) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(raw), PrivateKeySize)
	}

	key, err := ecdsa.ParseRawPrivateKey(elliptic.P256(), raw)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return key, nil
}

// SigningKeyBytes exports the raw scalar and uncompressed public point of a
// signing key.
func SigningKeyBytes(key *ecdsa.PrivateKey) (priv, pub []byte, err error) {
	priv, err = key.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("export private key: %w", err)
	}
	pub, err = key.PublicKey.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("export public key: %w", err)
	}
	return priv, pub, nil
}
