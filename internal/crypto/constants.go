package crypto

const (
	// PublicKeySize is the size of an uncompressed P-256 public key in bytes.
	PublicKeySize = 65
	// PrivateKeySize is the size of a P-256 private scalar in bytes.
	PrivateKeySize = 32
	// AuthSecretSize is the size of the subscription auth secret in bytes.
	AuthSecretSize = 16
	// SharedSecretSize is the size of the ECDH shared secret in bytes.
	SharedSecretSize = 32

	// SaltSize is the size of the per-message record salt in bytes.
	SaltSize = 16
	// KeySize is the size of the AES-128 content-encryption key in bytes.
	KeySize = 16
	// NonceSize is the size of the AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of the AES-GCM authentication tag in bytes.
	TagSize = 16

	// RecordSize is the fixed record size written into every header.
	// Push services are not required to accept larger records.
	RecordSize = 4096

	// HeaderSize is the size of the aes128gcm header:
	// salt (16) || record size (4) || key id length (1) || key id (65).
	HeaderSize = SaltSize + 4 + 1 + PublicKeySize

	// MaxPlaintextSize is the largest plaintext a single record can carry.
	// The record size bounds the ciphertext, which adds the padding
	// delimiter and the GCM tag on top of the plaintext (RFC 8188 section 2).
	MaxPlaintextSize = RecordSize - TagSize - 1

	// uncompressedPointPrefix marks an uncompressed SEC 1 point.
	uncompressedPointPrefix = 0x04

	// paddingDelimiter terminates the plaintext of the last record.
	paddingDelimiter = 0x02
)

// HKDF info labels from RFC 8291 and RFC 8188. The trailing NUL is part of
// each label; these are protocol constants, never rebuilt at call sites.
var (
	keyInfoPrefix = []byte("WebPush: info\x00")
	cekInfo       = []byte("Content-Encoding: aes128gcm\x00")
	nonceInfo     = []byte("Content-Encoding: nonce\x00")
)
