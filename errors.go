package sealkit

import "errors"

var (
	// ErrValidation reports a malformed input: wrong byte length, wrong
	// field type, or a missing required field. Fix the call and retry.
	ErrValidation = errors.New("sealkit: invalid input")

	// ErrDecode reports envelope bytes that do not parse as a
	// well-formed record.
	ErrDecode = errors.New("sealkit: malformed envelope")

	// ErrKeyMismatch reports that the public key embedded in a signed
	// envelope does not match the expected sender key.
	ErrKeyMismatch = errors.New("sealkit: sender key mismatch")

	// ErrSignatureInvalid reports a failed signature check.
	ErrSignatureInvalid = errors.New("sealkit: invalid signature")

	// ErrAuthenticationFailed reports a failed AEAD tag check. Tampering,
	// a wrong key, and a corrupted nonce are indistinguishable on purpose.
	ErrAuthenticationFailed = errors.New("sealkit: authentication failed")
)
