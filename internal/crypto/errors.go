package crypto

import "errors"

var (
	// ErrMalformedEncoding is returned when base64url text cannot be decoded.
	ErrMalformedEncoding = errors.New("malformed base64url encoding")

	// ErrInvalidPublicKeySize is returned when a public key is not a 65-byte
	// uncompressed point.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidPublicKeyPrefix is returned when a public key does not start
	// with the uncompressed point marker.
	ErrInvalidPublicKeyPrefix = errors.New("public key is not an uncompressed point")

	// ErrInvalidPrivateKeySize is returned when a private scalar is not 32 bytes.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidAuthSecretSize is returned when the auth secret is not 16 bytes.
	ErrInvalidAuthSecretSize = errors.New("invalid auth secret size")

	// ErrPlaintextTooLarge is returned when the plaintext plus the padding
	// delimiter does not fit in a single record.
	ErrPlaintextTooLarge = errors.New("plaintext too large for a single record")

	// ErrDeriveLength is returned when more than one hash block of output is
	// requested from DeriveKey.
	ErrDeriveLength = errors.New("derive length exceeds single-block limit")

	// ErrRecordTruncated is returned when a wire record is too short to
	// contain the header and an authentication tag.
	ErrRecordTruncated = errors.New("record truncated")

	// ErrRecordMalformed is returned when a wire record's header fields do
	// not match the aes128gcm layout used for push messages.
	ErrRecordMalformed = errors.New("record header malformed")

	// ErrDecryptionFailed is returned when the GCM open fails or the padding
	// delimiter is missing.
	ErrDecryptionFailed = errors.New("decryption failed")
)
