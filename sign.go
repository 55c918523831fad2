package sealkit

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"quiver-chat/sealkit/internal/wire"
)

// Sign signs the message's canonical bytes and returns the serialized
// signed envelope. The signature is always included; the message body and
// the signer's public key travel with it only when the flags say so.
func Sign(msg Message, priv PrivateKey, includeMessage, includePublicKey bool) ([]byte, error) {
	signer := ed25519.NewKeyFromSeed(priv.seed[:])
	env := wire.SignedEnvelope{
		Sig: ed25519.Sign(signer, msg.data),
	}
	if includeMessage {
		body := msg.Bytes()
		env.Msg = &body
	}
	if includePublicKey {
		pub := priv.Public().Bytes()
		env.Pub = &pub
	}
	raw, err := wire.EncodeSigned(env)
	if err != nil {
		return nil, mapWireErr(err)
	}
	return raw, nil
}

// Verify checks a signed envelope against the expected signer key and
// returns the embedded message on success.
//
// The checks run in a fixed order so the caller learns why verification
// was rejected: an embedded public key must match the expected key's
// identifier first, then the message must be present, then the signature
// must verify over it.
func Verify(envelopeBytes []byte, expected PublicKey) (Message, error) {
	env, err := wire.DecodeSigned(envelopeBytes)
	if err != nil {
		return Message{}, mapWireErr(err)
	}

	if env.Pub != nil {
		embedded, err := NewPublicKey(*env.Pub)
		if err != nil {
			return Message{}, err
		}
		if embedded.ID() != expected.ID() {
			return Message{}, fmt.Errorf("%w: envelope carries key %s, expected %s",
				ErrKeyMismatch, embedded.ID(), expected.ID())
		}
	}

	if env.Msg == nil {
		return Message{}, fmt.Errorf("%w: envelope does not carry the signed message", ErrValidation)
	}

	if !ed25519.Verify(expected.raw[:], *env.Msg, env.Sig) {
		return Message{}, ErrSignatureInvalid
	}
	return NewMessage(*env.Msg), nil
}

// mapWireErr translates codec errors into the public error kinds.
func mapWireErr(err error) error {
	switch {
	case errors.Is(err, wire.ErrMissingField),
		errors.Is(err, wire.ErrFieldType),
		errors.Is(err, wire.ErrFieldLength):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, wire.ErrMalformed):
		return fmt.Errorf("%w: %v", ErrDecode, err)
	default:
		return err
	}
}
