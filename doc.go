// Package sealkit provides authenticated, confidential messaging between
// two Curve25519 key holders: Ed25519 signing and verification, hybrid
// public-key encryption (ECIES over X25519 with ChaCha20-Poly1305), and
// the sign-then-encrypt / decrypt-then-verify composition of the two.
//
// Responsibilities:
// - Key generation, derivation, identifiers, and textual import/export.
// - The six one-shot operations: Sign, Verify, Encrypt, Decrypt,
//   SignAndEncrypt, DecryptAndVerify.
// - The two wire envelopes (signed, encrypted) and their validation rules.
//
// Non-responsibilities:
// - Network transport, session or handshake protocols, key rotation
//   policy, and traffic-analysis protection.
//
// Every operation is a pure function of its inputs plus the system random
// source; no state is shared across calls, so concurrent use needs no
// coordination.
package sealkit
