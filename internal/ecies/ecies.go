// Package ecies implements hybrid public-key encryption over Curve25519:
// an ephemeral X25519 agreement per message, HKDF-SHA256 key derivation,
// and ChaCha20-Poly1305 authenticated encryption.
//
// Callers hold Ed25519 signing keys; the conversion to the X25519
// representation happens here, exactly once per call, so key
// representations can never be mixed outside this package.
package ecies

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the derived symmetric key size in bytes.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the AEAD nonce size in bytes.
	NonceSize = chacha20poly1305.NonceSize
	// Overhead is the AEAD authentication tag size in bytes.
	Overhead = chacha20poly1305.Overhead

	// kdfInfo separates keys derived for this scheme from any other
	// HKDF use. Bump the version suffix if the suite ever changes.
	kdfInfo = "quiver/sealkit/ecies/v1"
)

var (
	ErrAuthFailed  = errors.New("ecies: authentication failed")
	ErrInvalidKey  = errors.New("ecies: invalid key")
	ErrRandSource  = errors.New("ecies: random source unavailable")
	errShortCipher = errors.New("ecies: ciphertext shorter than tag")
)

// Envelope carries one encrypted message. All three fields are required.
type Envelope struct {
	Ciphertext   []byte // AEAD output, ciphertext||tag
	EphemeralPub []byte // X25519 public key, 32 bytes
	Nonce        []byte // AEAD nonce, 12 bytes
}

// PublicToAgreement converts a 32-byte Ed25519 public key to its X25519
// (Montgomery form) equivalent.
func PublicToAgreement(pub []byte) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, ErrInvalidKey
	}
	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return point.BytesMontgomery(), nil
}

// PrivateToAgreement derives the X25519 private scalar from a 32-byte
// Ed25519 seed: SHA-512 of the seed, clamped per RFC 7748.
func PrivateToAgreement(seed []byte) ([]byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ErrInvalidKey
	}
	digest := sha512.Sum512(seed)
	scalar := digest[:curve25519.ScalarSize]
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	return scalar, nil
}

// Encrypt encrypts plaintext to the holder of recipientPub (an Ed25519
// public key). A fresh ephemeral key pair and a fresh nonce are drawn for
// every call; the derived symmetric key is therefore never shared between
// two messages, which is what makes the random nonce safe.
func Encrypt(recipientPub, plaintext []byte) (Envelope, error) {
	agreementPub, err := PublicToAgreement(recipientPub)
	if err != nil {
		return Envelope{}, err
	}

	ephPriv := make([]byte, curve25519.ScalarSize)
	if _, err := io.ReadFull(rand.Reader, ephPriv); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrRandSource, err)
	}
	ephPriv[0] &= 248
	ephPriv[31] &= 127
	ephPriv[31] |= 64
	ephPub, err := curve25519.X25519(ephPriv, curve25519.Basepoint)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	shared, err := curve25519.X25519(ephPriv, agreementPub)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	key, err := deriveKey(shared)
	if err != nil {
		return Envelope{}, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Envelope{}, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrRandSource, err)
	}

	return Envelope{
		Ciphertext:   aead.Seal(nil, nonce, plaintext, nil),
		EphemeralPub: ephPub,
		Nonce:        nonce,
	}, nil
}

// Decrypt reverses Encrypt using the recipient's Ed25519 seed. Tampered
// ciphertext, a wrong key, and a corrupted nonce all surface as the same
// ErrAuthFailed so callers cannot be used as an oracle for which part was
// wrong.
func Decrypt(recipientSeed []byte, env Envelope) ([]byte, error) {
	if len(env.Ciphertext) < Overhead {
		return nil, errShortCipher
	}
	agreementPriv, err := PrivateToAgreement(recipientSeed)
	if err != nil {
		return nil, err
	}

	shared, err := curve25519.X25519(agreementPriv, env.EphemeralPub)
	if err != nil {
		return nil, ErrAuthFailed
	}
	key, err := deriveKey(shared)
	if err != nil {
		return nil, ErrAuthFailed
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, ErrAuthFailed
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// deriveKey expands the raw shared secret into the symmetric key. No salt:
// the secret is fresh per message already, and the versioned info label
// keeps the derivation separate from any other use of the same secret.
func deriveKey(shared []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, shared, nil, []byte(kdfInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
