package config

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML document from r over the defaults and validates the
// result.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: "<reader>", Message: err.Error(), Err: err}
	}
	return Parse("<reader>", data)
}

// Parse decodes a TOML document over the defaults and validates the
// result. source names the document in errors.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(source, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	var missing *toml.StrictMissingError
	if errors.As(err, &missing) {
		errs := make([]error, 0, len(missing.Errors))
		for _, e := range missing.Errors {
			errs = append(errs, &ValidationError{
				Path:    strings.Join(e.Key(), "."),
				Message: "unknown setting",
				Code:    ErrCodeUnknownSetting,
			})
		}
		return errors.Join(errs...)
	}

	pe := &ParseError{Source: source, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// Marshal encodes cfg as a TOML document.
func Marshal(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
