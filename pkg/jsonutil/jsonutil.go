// Package jsonutil wraps github.com/go-json-experiment/json behind an
// encoding/json shaped API.
//
// Usage:
//
//	err := jsonutil.Unmarshal(data, &v)
//	err := jsonutil.NewStreamEncoder(os.Stdout).SetIndent("", "  ").Encode(v)
package jsonutil

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
// Unknown object members are ignored.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Encoder is a streaming encoder compatible with encoding/json.Encoder.
type Encoder struct {
	w      io.Writer
	indent string
}

// NewStreamEncoder creates an encoder that writes to w.
func NewStreamEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetIndent makes every subsequent value indented with indent.
// The prefix is accepted for encoding/json compatibility and ignored.
func (e *Encoder) SetIndent(prefix, indent string) *Encoder {
	e.indent = indent
	return e
}

// Encode writes the JSON encoding of v followed by a newline.
func (e *Encoder) Encode(v any) error {
	var err error
	if e.indent != "" {
		err = json.MarshalWrite(e.w, v, jsontext.WithIndent(e.indent))
	} else {
		err = json.MarshalWrite(e.w, v)
	}
	if err != nil {
		return err
	}
	_, err = e.w.Write([]byte{'\n'})
	return err
}
