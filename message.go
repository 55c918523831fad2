package sealkit

import (
	"bytes"
	"encoding/hex"
	"unicode/utf8"
)

// Message is an immutable byte payload with a UTF-8 text interpretation.
// Its binary form is canonical; the text rendering is for display only.
type Message struct {
	data []byte
}

// NewMessage builds a message from raw bytes. The bytes are copied.
func NewMessage(b []byte) Message {
	return Message{data: append([]byte(nil), b...)}
}

// NewMessageString builds a message from text, encoded as UTF-8.
func NewMessageString(s string) Message {
	return Message{data: []byte(s)}
}

// Bytes returns a copy of the canonical binary form.
func (m Message) Bytes() []byte {
	return append([]byte(nil), m.data...)
}

// Len returns the payload length in bytes.
func (m Message) Len() int {
	return len(m.data)
}

// Text renders the payload for display. Payloads that are not valid UTF-8
// come back hex-encoded; never use the result for security decisions.
func (m Message) Text() string {
	if utf8.Valid(m.data) {
		return string(m.data)
	}
	return hex.EncodeToString(m.data)
}

// Equal reports byte-wise equality with another message.
func (m Message) Equal(other Message) bool {
	return bytes.Equal(m.data, other.data)
}
