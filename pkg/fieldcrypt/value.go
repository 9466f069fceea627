package fieldcrypt

import (
	"encoding/json"
	"errors"
	"strings"
)

// Kind distinguishes scalar text from structured payloads.
type Kind uint8

const (
	KindText Kind = iota
	KindObject
)

// ErrNotObject is returned by Value.Decode for text values.
var ErrNotObject = errors.New("fieldcrypt: value is not an object")

// Value is the plaintext side of a field. Callers declare the kind when
// encrypting, so decrypting never has to guess for current envelopes.
type Value struct {
	Kind Kind
	Text string

	obj any
	raw json.RawMessage
}

// Text wraps a scalar string.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Object wraps a structured value that is JSON-encoded on Encrypt.
func Object(v any) Value {
	return Value{Kind: KindObject, obj: v}
}

// RawObject wraps already-encoded JSON.
func RawObject(raw json.RawMessage) Value {
	return Value{Kind: KindObject, raw: raw}
}

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool {
	if v.Kind == KindObject {
		return v.obj == nil && len(v.raw) == 0
	}
	return v.Text == ""
}

// String returns the text, or the JSON encoding for objects.
func (v Value) String() string {
	if v.Kind == KindText {
		return v.Text
	}
	s, err := v.payload()
	if err != nil {
		return ""
	}
	return s
}

// Raw returns the JSON encoding of an object value, nil for text.
func (v Value) Raw() json.RawMessage {
	if v.Kind != KindObject {
		return nil
	}
	if v.raw != nil {
		return v.raw
	}
	b, err := json.Marshal(v.obj)
	if err != nil {
		return nil
	}
	return b
}

// Decode unmarshals an object value into dst.
func (v Value) Decode(dst any) error {
	if v.Kind != KindObject {
		return ErrNotObject
	}
	return json.Unmarshal(v.Raw(), dst)
}

func (v Value) payload() (string, error) {
	if v.Kind == KindText {
		return v.Text, nil
	}
	if v.raw != nil {
		if !json.Valid(v.raw) {
			return "", errors.New("invalid raw json")
		}
		return string(v.raw), nil
	}
	b, err := json.Marshal(v.obj)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// objectOrText applies the "is it structured?" fallback used for payloads
// whose kind was not recorded: JSON objects and arrays become object values,
// everything else stays text.
func objectOrText(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return Text(s)
	}
	if !json.Valid([]byte(trimmed)) {
		return Text(s)
	}
	return RawObject(json.RawMessage(trimmed))
}
