package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"encoding/binary"
	"fmt"
)

// ValidateMessage checks the subscription key material and plaintext bounds
// before any cryptographic work. It is the same check Encrypt performs, split
// out so callers can reject a message before committing to a network call.
func ValidateMessage(clientPublicKey, authSecret, plaintext []byte) error {
	if len(clientPublicKey) != PublicKeySize {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(clientPublicKey), PublicKeySize)
	}
	if clientPublicKey[0] != uncompressedPointPrefix {
		return ErrInvalidPublicKeyPrefix
	}
	if len(authSecret) != AuthSecretSize {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidAuthSecretSize, len(authSecret), AuthSecretSize)
	}
	if len(plaintext) > MaxPlaintextSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPlaintextTooLarge, len(plaintext), MaxPlaintextSize)
	}
	return nil
}

// Encrypt encrypts plaintext for a subscription and returns the complete
// aes128gcm wire record (RFC 8291). A fresh message key and record salt are
// generated for this call and discarded; no two calls produce the same bytes.
func Encrypt(clientPublicKey, authSecret, plaintext []byte) ([]byte, error) {
	messageKey, err := GenerateMessageKey()
	if err != nil {
		return nil, err
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}

	return EncryptRecord(clientPublicKey, authSecret, plaintext, messageKey, salt)
}

// EncryptRecord is the deterministic core of Encrypt: the message key and
// record salt are supplied by the caller. Production code goes through
// Encrypt; conformance tests pass fixed values to pin exact wire bytes.
func EncryptRecord(clientPublicKey, authSecret, plaintext []byte, messageKey *ecdh.PrivateKey, salt []byte) ([]byte, error) {
	if err := ValidateMessage(clientPublicKey, authSecret, plaintext); err != nil {
		return nil, err
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("record salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	clientKey, err := ParsePublicKey(clientPublicKey)
	if err != nil {
		return nil, err
	}
	messagePublicKey := messageKey.PublicKey().Bytes()

	sharedSecret, err := SharedSecret(messageKey, clientKey)
	if err != nil {
		return nil, err
	}

	// IKM binds both public keys; the client key comes first. Swapping the
	// order derives different keys and no compliant receiver can decrypt.
	keyInfo := make([]byte, 0, len(keyInfoPrefix)+2*PublicKeySize)
	keyInfo = append(keyInfo, keyInfoPrefix...)
	keyInfo = append(keyInfo, clientPublicKey...)
	keyInfo = append(keyInfo, messagePublicKey...)

	ikm, err := DeriveKey(sharedSecret, authSecret, keyInfo, SharedSecretSize)
	if err != nil {
		return nil, err
	}

	cek, err := DeriveKey(ikm, salt, cekInfo, KeySize)
	if err != nil {
		return nil, err
	}

	nonce, err := DeriveKey(ikm, salt, nonceInfo, NonceSize)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Header, delimited plaintext and ciphertext share one buffer; Seal
	// overwrites the plaintext region in place.
	record := make([]byte, 0, HeaderSize+len(plaintext)+1+TagSize)
	record = append(record, salt...)
	record = binary.BigEndian.AppendUint32(record, RecordSize)
	record = append(record, byte(PublicKeySize))
	record = append(record, messagePublicKey...)
	record = append(record, plaintext...)
	record = append(record, paddingDelimiter)
	gcm.Seal(record[HeaderSize:HeaderSize], nonce, record[HeaderSize:len(plaintext)+1+HeaderSize], nil)

	return record[:cap(record)], nil
}
