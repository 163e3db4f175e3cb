// Package jsonutil wraps goccy/go-json with the decode helpers shared by the
// lead source, the preference stores and the HTTP server.
package jsonutil

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArray unmarshals a JSON array. An empty array yields an empty,
// non-nil slice.
func UnmarshalArray[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []T{}
	}
	return entries, nil
}

// EncodeString renders v as a JSON string value, the way browser local
// storage keeps JSON.stringify output.
func EncodeString(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeString parses a value written by EncodeString.
func DecodeString[T any](raw string) (T, error) {
	var v T
	if raw == "" {
		return v, fmt.Errorf("empty JSON value")
	}
	err := json.Unmarshal([]byte(raw), &v)
	return v, err
}

// WriteIndented writes v as two-space indented JSON followed by a newline.
func WriteIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
