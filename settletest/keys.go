package settletest

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
)

// NewKey returns a new, random ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}
