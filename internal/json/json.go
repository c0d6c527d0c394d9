// Package json is a thin indirection over the JSON implementation used
// for question-set serialization. It defaults to bytedance/sonic and
// exists so the encoder can be swapped without touching callers.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

// Marshal encodes v.
func Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalIndent encodes v with indentation.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// NewEncoder returns a streaming encoder writing to w.
func NewEncoder(w io.Writer) sonic.Encoder {
	return sonic.ConfigDefault.NewEncoder(w)
}

// NewDecoder returns a streaming decoder reading from r.
func NewDecoder(r io.Reader) sonic.Decoder {
	return sonic.ConfigDefault.NewDecoder(r)
}
