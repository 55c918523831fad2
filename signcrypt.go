package sealkit

// SignAndEncrypt signs the message, then encrypts the whole signed
// envelope to the recipient. Signing first keeps the sender's public key
// and the envelope structure hidden from anyone without the recipient's
// private key, while the recipient can still verify authorship after
// decrypting. The message always travels inside; the sender's public key
// is embedded when includeSenderPublicKey is set.
func SignAndEncrypt(msg Message, sender PrivateKey, recipient PublicKey, includeSenderPublicKey bool) ([]byte, error) {
	signed, err := Sign(msg, sender, true, includeSenderPublicKey)
	if err != nil {
		return nil, err
	}
	return Encrypt(Message{data: signed}, recipient)
}

// DecryptAndVerify decrypts an envelope produced by SignAndEncrypt and
// verifies the recovered signed envelope against the expected sender.
// Failures keep their stage's error kind: decryption problems surface as
// ErrAuthenticationFailed or ErrDecode, verification problems as
// ErrKeyMismatch or ErrSignatureInvalid.
func DecryptAndVerify(envelopeBytes []byte, recipient PrivateKey, expectedSender PublicKey) (Message, error) {
	inner, err := Decrypt(envelopeBytes, recipient)
	if err != nil {
		return Message{}, err
	}
	return Verify(inner.data, expectedSender)
}
