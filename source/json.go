package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// DecodeJSON decodes a single JSON document into a wire value. Numbers are
// kept as json.Number.
func DecodeJSON(data []byte) (any, error) { return DecodeJSONReader(bytes.NewReader(data)) }

// DecodeJSONReader is like DecodeJSON but reads from r.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: decode json: unexpected data after top-level value")
	}
	return v, nil
}

// EncodeJSON serializes a wire value. *big.Int and json.Number are written as
// JSON numbers without loss.
func EncodeJSON(v any) ([]byte, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("source: encode json: %w", err)
	}
	return b, nil
}

// EncodeJSONIndent is EncodeJSON with indentation, used for human output.
func EncodeJSONIndent(v any) ([]byte, error) {
	b, err := j.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("source: encode json: %w", err)
	}
	return b, nil
}
