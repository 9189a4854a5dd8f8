package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"encoding/binary"
	"fmt"
)

// Record is a parsed aes128gcm wire record.
type Record struct {
	Salt             []byte
	RecordSize       uint32
	MessagePublicKey []byte
	Ciphertext       []byte
}

// ParseRecord splits a wire record into its header fields and ciphertext.
func ParseRecord(record []byte) (*Record, error) {
	if len(record) < HeaderSize+TagSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrRecordTruncated, len(record))
	}

	salt := record[:SaltSize]
	rs := binary.BigEndian.Uint32(record[SaltSize : SaltSize+4])
	idLen := int(record[SaltSize+4])

	if idLen != PublicKeySize {
		return nil, fmt.Errorf("%w: key id length %d", ErrRecordMalformed, idLen)
	}
	if rs < TagSize+1 {
		return nil, fmt.Errorf("%w: record size %d", ErrRecordMalformed, rs)
	}

	return &Record{
		Salt:             salt,
		RecordSize:       rs,
		MessagePublicKey: record[SaltSize+5 : HeaderSize],
		Ciphertext:       record[HeaderSize:],
	}, nil
}

// Decrypt implements the receiving side of the scheme. It exists for
// conformance tests and local tooling: given the subscription's private key
// and auth secret it recovers the plaintext from a wire record.
func Decrypt(record []byte, clientKey *ecdh.PrivateKey, authSecret []byte) ([]byte, error) {
	parsed, err := ParseRecord(record)
	if err != nil {
		return nil, err
	}

	messageKey, err := ParsePublicKey(parsed.MessagePublicKey)
	if err != nil {
		return nil, err
	}

	sharedSecret, err := SharedSecret(clientKey, messageKey)
	if err != nil {
		return nil, err
	}

	clientPublicKey := clientKey.PublicKey().Bytes()

	keyInfo := make([]byte, 0, len(keyInfoPrefix)+2*PublicKeySize)
	keyInfo = append(keyInfo, keyInfoPrefix...)
	keyInfo = append(keyInfo, clientPublicKey...)
	keyInfo = append(keyInfo, parsed.MessagePublicKey...)

	ikm, err := DeriveKey(sharedSecret, authSecret, keyInfo, SharedSecretSize)
	if err != nil {
		return nil, err
	}

	cek, err := DeriveKey(ikm, parsed.Salt, cekInfo, KeySize)
	if err != nil {
		return nil, err
	}

	nonce, err := DeriveKey(ikm, parsed.Salt, nonceInfo, NonceSize)
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

	padded, err := gcm.Open(nil, nonce, parsed.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return stripPadding(padded)
}

// stripPadding removes trailing zero padding and the delimiter from the
// plaintext of a final record. The sender emits minimal padding, but any
// compliant amount of trailing zeros is accepted.
func stripPadding(padded []byte) ([]byte, error) {
	i := len(padded) - 1
	for i >= 0 && padded[i] == 0x00 {
		i--
	}
	if i < 0 || padded[i] != paddingDelimiter {
		return nil, fmt.Errorf("%w: missing padding delimiter", ErrDecryptionFailed)
	}
	return padded[:i], nil
}
