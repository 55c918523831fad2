package sealkit

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// PrivateKeySize is the byte length of a private key seed.
	PrivateKeySize = ed25519.SeedSize
	// PublicKeySize is the byte length of a public key encoding.
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the byte length of a signature.
	SignatureSize = ed25519.SignatureSize
	// KeyIDSize is the byte length of a key identifier digest.
	KeyIDSize = 20

	fingerprintPrefix = "sk1"
)

// PrivateKey is a 32-byte Ed25519 seed. It derives, never stores, the
// matching public key and the X25519 representation used for encryption.
type PrivateKey struct {
	seed [PrivateKeySize]byte
}

// PublicKey is a 32-byte Ed25519 point encoding.
type PublicKey struct {
	raw [PublicKeySize]byte
}

// KeyID is a short hash-derived public key identifier. It is meant for
// equality comparison only, never for authorization decisions.
type KeyID [KeyIDSize]byte

// GenerateKey draws a fresh private key from the system random source.
func GenerateKey() (PrivateKey, error) {
	var priv PrivateKey
	if _, err := io.ReadFull(rand.Reader, priv.seed[:]); err != nil {
		return PrivateKey{}, fmt.Errorf("sealkit: random source unavailable: %w", err)
	}
	return priv, nil
}

// NewPrivateKey imports a 32-byte seed.
func NewPrivateKey(seed []byte) (PrivateKey, error) {
	if len(seed) != PrivateKeySize {
		return PrivateKey{}, fmt.Errorf("%w: private key is %d bytes, want %d", ErrValidation, len(seed), PrivateKeySize)
	}
	var priv PrivateKey
	copy(priv.seed[:], seed)
	return priv, nil
}

// NewPublicKey imports a 32-byte public key encoding.
func NewPublicKey(raw []byte) (PublicKey, error) {
	if len(raw) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: public key is %d bytes, want %d", ErrValidation, len(raw), PublicKeySize)
	}
	var pub PublicKey
	copy(pub.raw[:], raw)
	return pub, nil
}

// Public derives the public key by scalar multiplication over the seed.
func (k PrivateKey) Public() PublicKey {
	priv := ed25519.NewKeyFromSeed(k.seed[:])
	var pub PublicKey
	copy(pub.raw[:], priv.Public().(ed25519.PublicKey))
	return pub
}

// Seed returns a copy of the raw 32-byte seed.
func (k PrivateKey) Seed() []byte {
	return append([]byte(nil), k.seed[:]...)
}

// Bytes returns a copy of the raw 32-byte encoding.
func (k PublicKey) Bytes() []byte {
	return append([]byte(nil), k.raw[:]...)
}

// ID computes the key identifier: a 20-byte BLAKE2b digest of the public
// key encoding.
func (k PublicKey) ID() KeyID {
	h, err := blake2b.New(KeyIDSize, nil)
	if err != nil {
		// blake2b.New only fails for an invalid digest size.
		panic(err)
	}
	h.Write(k.raw[:])
	var id KeyID
	copy(id[:], h.Sum(nil))
	return id
}

// Fingerprint renders a human-readable identity string for the key,
// prefix plus base58 of the full BLAKE2b-256 digest.
func (k PublicKey) Fingerprint() string {
	sum := blake2b.Sum256(k.raw[:])
	return fingerprintPrefix + base58.Encode(sum[:])
}

// String renders the identifier as lowercase hex.
func (id KeyID) String() string {
	return hex.EncodeToString(id[:])
}
