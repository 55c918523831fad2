package sealkit

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateKeyDerivesStablePublic(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	pub1 := priv.Public()
	pub2 := priv.Public()
	if !bytes.Equal(pub1.Bytes(), pub2.Bytes()) {
		t.Fatal("public key derivation must be deterministic")
	}
	if len(pub1.Bytes()) != PublicKeySize {
		t.Fatalf("public key must be %d bytes", PublicKeySize)
	}
}

func TestNewPrivateKeyRejectsWrongLength(t *testing.T) {
	if _, err := NewPrivateKey(make([]byte, 16)); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if _, err := NewPublicKey(make([]byte, 64)); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestKeyIDShapeAndEquality(t *testing.T) {
	privA, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	privB, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	idA := privA.Public().ID()
	if idA != privA.Public().ID() {
		t.Fatal("key id must be deterministic")
	}
	if idA == privB.Public().ID() {
		t.Fatal("distinct keys must have distinct ids")
	}

	rendered := idA.String()
	if len(rendered) != 2*KeyIDSize {
		t.Fatalf("key id must render to %d hex chars, got %d", 2*KeyIDSize, len(rendered))
	}
	if rendered != strings.ToLower(rendered) {
		t.Fatal("key id rendering must be lowercase hex")
	}
}

func TestBase64RoundTrip(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	gotPriv, err := PrivateKeyFromBase64(priv.Base64())
	if err != nil {
		t.Fatalf("private import failed: %v", err)
	}
	if !bytes.Equal(gotPriv.Seed(), priv.Seed()) {
		t.Fatal("private key base64 round trip mismatch")
	}

	pub := priv.Public()
	gotPub, err := PublicKeyFromBase64(pub.Base64())
	if err != nil {
		t.Fatalf("public import failed: %v", err)
	}
	if !bytes.Equal(gotPub.Bytes(), pub.Bytes()) {
		t.Fatal("public key base64 round trip mismatch")
	}
}

func TestBase64ImportRejectsGarbage(t *testing.T) {
	if _, err := PrivateKeyFromBase64("@@not base64@@"); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if _, err := PublicKeyFromBase64("AAAA"); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for wrong length, got %v", err)
	}
}

func TestMnemonicRoundTrip(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	mnemonic, err := priv.Mnemonic()
	if err != nil {
		t.Fatalf("mnemonic export failed: %v", err)
	}
	if got := len(strings.Fields(mnemonic)); got != 24 {
		t.Fatalf("expected 24-word phrase, got %d words", got)
	}
	restored, err := PrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("mnemonic import failed: %v", err)
	}
	if !bytes.Equal(restored.Seed(), priv.Seed()) {
		t.Fatal("mnemonic round trip mismatch")
	}
}

func TestMnemonicImportRejectsBadPhrase(t *testing.T) {
	if _, err := PrivateKeyFromMnemonic("definitely not a valid phrase"); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestFingerprintShape(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	fp := priv.Public().Fingerprint()
	if !strings.HasPrefix(fp, "sk1") {
		t.Fatalf("fingerprint must carry the sk1 prefix: %s", fp)
	}
	if fp != priv.Public().Fingerprint() {
		t.Fatal("fingerprint must be deterministic")
	}
}
