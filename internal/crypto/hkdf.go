package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives key material using HKDF-SHA-256.
//
// Every derivation in the push encryption scheme fits in a single expand
// block, so DeriveKey rejects lengths beyond one SHA-256 output. A caller
// that needs more must go through the multi-block expand explicitly rather
// than truncating here.
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if length > sha256.Size {
		return nil, fmt.Errorf("%w: %d > %d", ErrDeriveLength, length, sha256.Size)
	}

	if len(salt) == 0 {
		salt = make([]byte, sha256.Size)
	}

	reader := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
