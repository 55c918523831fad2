package sealkit

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// Base64 exports the private key seed for transport over text-only
// channels. Treat the result like the key itself.
func (k PrivateKey) Base64() string {
	return base64.StdEncoding.EncodeToString(k.seed[:])
}

// Base64 exports the public key encoding.
func (k PublicKey) Base64() string {
	return base64.StdEncoding.EncodeToString(k.raw[:])
}

// PrivateKeyFromBase64 imports a private key exported with Base64.
func PrivateKeyFromBase64(s string) (PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return NewPrivateKey(raw)
}

// PublicKeyFromBase64 imports a public key exported with Base64.
func PublicKeyFromBase64(s string) (PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return NewPublicKey(raw)
}

// Mnemonic renders the private key seed as a 24-word BIP-39 phrase for
// offline backup.
func (k PrivateKey) Mnemonic() (string, error) {
	return bip39.NewMnemonic(k.seed[:])
}

// PrivateKeyFromMnemonic restores a private key from its backup phrase.
func PrivateKeyFromMnemonic(mnemonic string) (PrivateKey, error) {
	entropy, err := bip39.EntropyFromMnemonic(strings.TrimSpace(mnemonic))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return NewPrivateKey(entropy)
}
