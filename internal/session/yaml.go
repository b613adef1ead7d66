package session

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Marshal encodes st as YAML.
func Marshal(st *State) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a State written by Marshal. Unknown fields are
// rejected so a file from a newer version fails loudly.
func Unmarshal(data []byte) (*State, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML-encoded State from r.
func Decode(r io.Reader) (*State, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var st State
	if err := dec.Decode(&st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if st.Version != Version {
		return nil, &VersionError{Got: st.Version, Want: Version}
	}
	return &st, nil
}
