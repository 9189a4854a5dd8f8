package webpush

import (
	"github.com/pushvault/webpush-go/internal/crypto"
)

// GenerateKeys creates a new VAPID key pair and returns both halves in
// unpadded URL-safe base64: the 65-byte uncompressed public point and the
// 32-byte private scalar. Generate once, store the result in configuration,
// and pass it to [New] on startup; regenerating invalidates every
// subscription's trust in the sender.
func GenerateKeys() (publicKey, privateKey string, err error) {
	key, err := crypto.GenerateSigningKey()
	if err != nil {
		return "", "", err
	}

	rawPrivate, rawPublic, err := crypto.SigningKeyBytes(key)
	if err != nil {
		return "", "", err
	}

	return crypto.ToBase64URL(rawPublic), crypto.ToBase64URL(rawPrivate), nil
}
