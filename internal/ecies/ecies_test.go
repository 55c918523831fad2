package ecies

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"

	"golang.org/x/crypto/curve25519"
)

func newKeyPair(t *testing.T) (seed, pub []byte) {
	t.Helper()
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	return privKey.Seed(), pubKey
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	seed, pub := newKeyPair(t)
	plaintext := []byte("the quick brown fox")

	env, err := Encrypt(pub, plaintext)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if len(env.EphemeralPub) != 32 {
		t.Fatalf("ephemeral public key must be 32 bytes, got %d", len(env.EphemeralPub))
	}
	if len(env.Nonce) != NonceSize {
		t.Fatalf("nonce must be %d bytes, got %d", NonceSize, len(env.Nonce))
	}
	if len(env.Ciphertext) != len(plaintext)+Overhead {
		t.Fatalf("ciphertext must carry the tag: got %d bytes", len(env.Ciphertext))
	}

	got, err := Decrypt(seed, env)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round trip must recover the plaintext")
	}
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	seed, pub := newKeyPair(t)
	env, err := Encrypt(pub, nil)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	got, err := Decrypt(seed, env)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("empty plaintext must round trip to empty")
	}
}

func TestEncryptFreshEphemeralAndNoncePerCall(t *testing.T) {
	_, pub := newKeyPair(t)
	env1, err := Encrypt(pub, []byte("same message"))
	if err != nil {
		t.Fatalf("encrypt 1 failed: %v", err)
	}
	env2, err := Encrypt(pub, []byte("same message"))
	if err != nil {
		t.Fatalf("encrypt 2 failed: %v", err)
	}
	if bytes.Equal(env1.EphemeralPub, env2.EphemeralPub) {
		t.Fatal("ephemeral key must be fresh per call")
	}
	if bytes.Equal(env1.Nonce, env2.Nonce) {
		t.Fatal("nonce must be fresh per call")
	}
	if bytes.Equal(env1.Ciphertext, env2.Ciphertext) {
		t.Fatal("ciphertext must differ across calls")
	}
}

func TestDecryptTamperedCiphertextFailsAuth(t *testing.T) {
	seed, pub := newKeyPair(t)
	env, err := Encrypt(pub, []byte("payload"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	for i := range env.Ciphertext {
		tampered := Envelope{
			Ciphertext:   append([]byte(nil), env.Ciphertext...),
			EphemeralPub: env.EphemeralPub,
			Nonce:        env.Nonce,
		}
		tampered.Ciphertext[i] ^= 0x01
		if _, err := Decrypt(seed, tampered); !errors.Is(err, ErrAuthFailed) {
			t.Fatalf("tampered byte %d: want ErrAuthFailed, got %v", i, err)
		}
	}
}

func TestDecryptTamperedNonceFailsAuth(t *testing.T) {
	seed, pub := newKeyPair(t)
	env, err := Encrypt(pub, []byte("payload"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	env.Nonce = append([]byte(nil), env.Nonce...)
	env.Nonce[0] ^= 0x80
	if _, err := Decrypt(seed, env); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("want ErrAuthFailed, got %v", err)
	}
}

func TestDecryptWrongKeyFailsAuth(t *testing.T) {
	_, pubA := newKeyPair(t)
	seedB, _ := newKeyPair(t)

	env, err := Encrypt(pubA, []byte("for A only"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if _, err := Decrypt(seedB, env); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("want ErrAuthFailed, got %v", err)
	}
}

func TestConversionPairStaysMatched(t *testing.T) {
	// The converted private scalar must correspond to the converted public
	// point, otherwise encrypt and decrypt would derive different secrets.
	seed, pub := newKeyPair(t)

	agreementPriv, err := PrivateToAgreement(seed)
	if err != nil {
		t.Fatalf("private conversion failed: %v", err)
	}
	fromPriv, err := curve25519.X25519(agreementPriv, curve25519.Basepoint)
	if err != nil {
		t.Fatalf("scalar base mult failed: %v", err)
	}
	fromPub, err := PublicToAgreement(pub)
	if err != nil {
		t.Fatalf("public conversion failed: %v", err)
	}
	if !bytes.Equal(fromPriv, fromPub) {
		t.Fatal("converted key pair does not match")
	}
}

func TestConversionRejectsBadLengths(t *testing.T) {
	if _, err := PublicToAgreement([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("want ErrInvalidKey for short public key, got %v", err)
	}
	if _, err := PrivateToAgreement(make([]byte, 16)); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("want ErrInvalidKey for short seed, got %v", err)
	}
}

func TestEncryptRejectsInvalidRecipientKey(t *testing.T) {
	if _, err := Encrypt(make([]byte, 16), []byte("x")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("want ErrInvalidKey, got %v", err)
	}
}
