// Package wire encodes the two message envelopes as self-describing CBOR
// records. Field names are fixed single tokens; field order on the wire is
// not significant. Decoding enforces presence, type, and length rules, and
// keeps "field absent" distinguishable from "field present but empty".
package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	// SignatureLen is the required byte length of the "sig" field.
	SignatureLen = 64
	// PublicKeyLen is the required byte length of the "P" and "P_e" fields.
	PublicKeyLen = 32
	// NonceLen is the required byte length of the "N" field.
	NonceLen = 12
	// MinCiphertextLen is the smallest valid "C" field: an empty message
	// still carries the 16-byte authentication tag.
	MinCiphertextLen = 16
)

// encMode encodes nil byte slices as empty byte strings so a present-but-
// empty field never turns into CBOR null on the wire.
var encMode = func() cbor.EncMode {
	em, err := cbor.EncOptions{NilContainers: cbor.NilContainerAsEmpty}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

var (
	ErrMalformed    = errors.New("wire: bytes are not a well-formed envelope")
	ErrMissingField = errors.New("wire: missing required field")
	ErrFieldType    = errors.New("wire: field has wrong type")
	ErrFieldLength  = errors.New("wire: field has wrong length")
)

// SignedEnvelope is the signed-message record. Sig is always present; Msg
// and Pub are independently optional and stay nil when absent.
type SignedEnvelope struct {
	Sig []byte  `cbor:"sig"`
	Msg *[]byte `cbor:"m,omitempty"`
	Pub *[]byte `cbor:"P,omitempty"`
}

// EciesEnvelope is the encrypted-message record. All fields are required.
type EciesEnvelope struct {
	Ciphertext   []byte `cbor:"C"`
	EphemeralPub []byte `cbor:"P_e"`
	Nonce        []byte `cbor:"N"`
}

// EncodeSigned serializes a signed envelope after checking its shape.
func EncodeSigned(env SignedEnvelope) ([]byte, error) {
	if len(env.Sig) != SignatureLen {
		return nil, fmt.Errorf("%w: sig is %d bytes, want %d", ErrFieldLength, len(env.Sig), SignatureLen)
	}
	if env.Pub != nil && len(*env.Pub) != PublicKeyLen {
		return nil, fmt.Errorf("%w: P is %d bytes, want %d", ErrFieldLength, len(*env.Pub), PublicKeyLen)
	}
	return encMode.Marshal(env)
}

// DecodeSigned parses and validates a signed envelope.
func DecodeSigned(raw []byte) (SignedEnvelope, error) {
	var env SignedEnvelope
	if err := unmarshal(raw, &env); err != nil {
		return SignedEnvelope{}, err
	}
	if env.Sig == nil {
		return SignedEnvelope{}, fmt.Errorf("%w: sig", ErrMissingField)
	}
	if len(env.Sig) != SignatureLen {
		return SignedEnvelope{}, fmt.Errorf("%w: sig is %d bytes, want %d", ErrFieldLength, len(env.Sig), SignatureLen)
	}
	if env.Pub != nil && len(*env.Pub) != PublicKeyLen {
		return SignedEnvelope{}, fmt.Errorf("%w: P is %d bytes, want %d", ErrFieldLength, len(*env.Pub), PublicKeyLen)
	}
	return env, nil
}

// EncodeEcies serializes an encrypted envelope after checking its shape.
func EncodeEcies(env EciesEnvelope) ([]byte, error) {
	if err := checkEcies(env); err != nil {
		return nil, err
	}
	return encMode.Marshal(env)
}

// DecodeEcies parses and validates an encrypted envelope.
func DecodeEcies(raw []byte) (EciesEnvelope, error) {
	var env EciesEnvelope
	if err := unmarshal(raw, &env); err != nil {
		return EciesEnvelope{}, err
	}
	if env.Ciphertext == nil {
		return EciesEnvelope{}, fmt.Errorf("%w: C", ErrMissingField)
	}
	if env.EphemeralPub == nil {
		return EciesEnvelope{}, fmt.Errorf("%w: P_e", ErrMissingField)
	}
	if env.Nonce == nil {
		return EciesEnvelope{}, fmt.Errorf("%w: N", ErrMissingField)
	}
	if err := checkEcies(env); err != nil {
		return EciesEnvelope{}, err
	}
	return env, nil
}

func checkEcies(env EciesEnvelope) error {
	if len(env.Ciphertext) < MinCiphertextLen {
		return fmt.Errorf("%w: C is %d bytes, want at least %d", ErrFieldLength, len(env.Ciphertext), MinCiphertextLen)
	}
	if len(env.EphemeralPub) != PublicKeyLen {
		return fmt.Errorf("%w: P_e is %d bytes, want %d", ErrFieldLength, len(env.EphemeralPub), PublicKeyLen)
	}
	if len(env.Nonce) != NonceLen {
		return fmt.Errorf("%w: N is %d bytes, want %d", ErrFieldLength, len(env.Nonce), NonceLen)
	}
	return nil
}

// unmarshal maps CBOR decode failures onto the package error kinds: a field
// whose CBOR value is not a byte string is a type error, anything else that
// fails to parse (including a top-level value that is not a map) is
// malformed.
func unmarshal(raw []byte, v any) error {
	err := cbor.Unmarshal(raw, v)
	if err == nil {
		return nil
	}
	var typeErr *cbor.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.GoType == "[]uint8" {
		return fmt.Errorf("%w: %v", ErrFieldType, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
