// Package keystore persists private keys in passphrase-protected files.
// The key seed is sealed with XChaCha20-Poly1305 under an argon2id-derived
// key and written as a versioned JSON envelope behind a magic prefix.
package keystore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"quiver-chat/sealkit"
)

const (
	envelopeVersion = 1
	saltSize        = 16
	filePrefix      = "SEALKITKEY1\n"

	argonTime     = 2
	argonMemoryKB = 64 * 1024
	argonThreads  = 1
)

var (
	ErrAuthFailed = errors.New("keystore: wrong passphrase or corrupted key file")
	ErrInvalid    = errors.New("keystore: key file is invalid")
)

// Envelope is the on-disk record. KDF parameters are stored alongside the
// ciphertext so old files stay readable if defaults change.
type Envelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// Save seals the private key under the passphrase and writes it to path
// with owner-only permissions.
func Save(path, passphrase string, priv sealkit.PrivateKey) error {
	if strings.TrimSpace(passphrase) == "" {
		return fmt.Errorf("%w: empty passphrase", ErrInvalid)
	}
	env, err := seal(passphrase, priv.Seed())
	if err != nil {
		return err
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(filePrefix), raw...), 0o600)
}

// Load reads a key file written by Save and recovers the private key.
func Load(path, passphrase string) (sealkit.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sealkit.PrivateKey{}, err
	}
	if !strings.HasPrefix(string(data), filePrefix) {
		return sealkit.PrivateKey{}, ErrInvalid
	}
	var env Envelope
	if err := json.Unmarshal(data[len(filePrefix):], &env); err != nil {
		return sealkit.PrivateKey{}, ErrInvalid
	}
	seed, err := open(passphrase, &env)
	if err != nil {
		return sealkit.PrivateKey{}, err
	}
	defer zeroBytes(seed)
	return sealkit.NewPrivateKey(seed)
}

func seal(passphrase string, seed []byte) (*Envelope, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := deriveFileKey(passphrase, salt, argonTime, argonMemoryKB, argonThreads)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return &Envelope{
		Version:     envelopeVersion,
		KDF:         "argon2id",
		KDFTime:     argonTime,
		KDFMemoryKB: argonMemoryKB,
		KDFThreads:  argonThreads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, seed, nil),
	}, nil
}

func open(passphrase string, env *Envelope) ([]byte, error) {
	if env.Version != envelopeVersion || env.KDF != "argon2id" {
		return nil, ErrInvalid
	}
	key := deriveFileKey(passphrase, env.Salt, env.KDFTime, env.KDFMemoryKB, env.KDFThreads)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	seed, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return seed, nil
}

func deriveFileKey(passphrase string, salt []byte, timeCost, memoryKB uint32, threads uint8) []byte {
	return argon2.IDKey([]byte(passphrase), salt, timeCost, memoryKB, threads, chacha20poly1305.KeySize)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
