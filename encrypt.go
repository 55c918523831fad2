package sealkit

import (
	"errors"
	"fmt"

	"quiver-chat/sealkit/internal/ecies"
	"quiver-chat/sealkit/internal/wire"
)

// Encrypt encrypts the message to the recipient and returns the serialized
// encrypted envelope. Only the holder of the matching private key can
// recover the payload.
func Encrypt(msg Message, recipient PublicKey) ([]byte, error) {
	sealed, err := ecies.Encrypt(recipient.raw[:], msg.data)
	if err != nil {
		return nil, mapEciesErr(err)
	}
	raw, err := wire.EncodeEcies(wire.EciesEnvelope{
		Ciphertext:   sealed.Ciphertext,
		EphemeralPub: sealed.EphemeralPub,
		Nonce:        sealed.Nonce,
	})
	if err != nil {
		return nil, mapWireErr(err)
	}
	return raw, nil
}

// Decrypt opens an encrypted envelope with the recipient's private key and
// returns the plaintext message. Any failure to open the payload surfaces
// as ErrAuthenticationFailed.
func Decrypt(envelopeBytes []byte, recipient PrivateKey) (Message, error) {
	env, err := wire.DecodeEcies(envelopeBytes)
	if err != nil {
		return Message{}, mapWireErr(err)
	}
	plaintext, err := ecies.Decrypt(recipient.seed[:], ecies.Envelope{
		Ciphertext:   env.Ciphertext,
		EphemeralPub: env.EphemeralPub,
		Nonce:        env.Nonce,
	})
	if err != nil {
		return Message{}, mapEciesErr(err)
	}
	return Message{data: plaintext}, nil
}

// mapEciesErr translates engine errors into the public error kinds.
func mapEciesErr(err error) error {
	switch {
	case errors.Is(err, ecies.ErrAuthFailed):
		return ErrAuthenticationFailed
	case errors.Is(err, ecies.ErrInvalidKey):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
