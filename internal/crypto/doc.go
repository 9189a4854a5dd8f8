// Package crypto implements the message encryption scheme for Web Push
// (RFC 8291) and the aes128gcm content coding it builds on (RFC 8188).
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - ECDH over NIST P-256: key agreement between a per-message key pair
//     and the subscription's public key.
//
//   - HKDF-SHA-256 (RFC 5869): key derivation for the intermediate key
//     material, the content-encryption key and the nonce. Every derivation
//     requests at most one hash block, so [DeriveKey] enforces that bound.
//
//   - AES-128-GCM: authenticated encryption of the padded plaintext.
//     Provides confidentiality and integrity.
//
// # Security Model
//
// Each message is encrypted under a fresh P-256 key pair and a fresh 16-byte
// record salt; both exist only for the duration of a single [Encrypt] call.
// This guarantees that no content-encryption key or nonce is ever reused
// across messages, even to the same subscription, and gives each message
// forward secrecy with respect to the sender's long-lived signing key.
//
// Tampering with any byte of the wire record causes [Decrypt] to fail; the
// GCM tag covers the entire ciphertext.
//
// # Wire Format
//
// [Encrypt] produces a single aes128gcm record:
//
//	salt (16) || record size (4, big endian) || key id length (1) ||
//	message public key (65) || ciphertext || tag (16)
//
// The record size is fixed at 4096 and the key id is always the 65-byte
// uncompressed per-message public key. The layout is a frozen protocol
// contract; there is deliberately no way to configure it.
//
// # Base64 Encoding
//
// All protocol values exchanged as text (keys, auth secrets, tokens) use
// URL-safe base64 without padding (RFC 4648 §5) via [ToBase64URL] and
// [FromBase64URL]. [DecodeKeyMaterial] additionally tolerates the padded and
// standard-alphabet variants browsers occasionally emit.
package crypto
