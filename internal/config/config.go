package config

import (
	"errors"
	"fmt"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/macro"
)

// Config holds every configurable option of a session.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Search  SearchConfig  `toml:"search"`
	History HistoryConfig `toml:"history"`
	Keymap  KeymapConfig  `toml:"keymap"`
}

// EditorConfig holds the text layout options.
type EditorConfig struct {
	TabStop    int  `toml:"tabstop"`
	ShiftWidth int  `toml:"shiftwidth"`
	ExpandTab  bool `toml:"expandtab"`
	AutoIndent bool `toml:"autoindent"`
	ScrollOff  int  `toml:"scrolloff"`
}

// SearchConfig holds the pattern matching options.
type SearchConfig struct {
	IgnoreCase bool `toml:"ignorecase"`
	SmartCase  bool `toml:"smartcase"`
	WrapScan   bool `toml:"wrapscan"`
}

// HistoryConfig bounds the undo history, the jump and change lists and
// macro nesting.
type HistoryConfig struct {
	UndoLevels     int `toml:"undolevels"`
	JumpListSize   int `toml:"jumplist_size"`
	ChangeListSize int `toml:"changelist_size"`
	MacroDepth     int `toml:"macro_depth"`
}

// KeymapConfig holds the leader key and the mappings of each scope, left
// side to right side in key notation.
type KeymapConfig struct {
	Leader   string            `toml:"leader"`
	Normal   map[string]string `toml:"normal,omitempty"`
	Visual   map[string]string `toml:"visual,omitempty"`
	Operator map[string]string `toml:"operator,omitempty"`
	Insert   map[string]string `toml:"insert,omitempty"`
}

func (k *KeymapConfig) scopes() []struct {
	name  string
	scope keymap.Scope
	m     map[string]string
} {
	return []struct {
		name  string
		scope keymap.Scope
		m     map[string]string
	}{
		{"normal", keymap.Normal, k.Normal},
		{"visual", keymap.Visual, k.Visual},
		{"operator", keymap.OperatorPending, k.Operator},
		{"insert", keymap.Insert, k.Insert},
	}
}

// Build creates the keymap the section describes.
func (k *KeymapConfig) Build() (*keymap.Map, error) {
	m := keymap.New()
	if k.Leader != "" {
		ev, err := key.Parse(k.Leader)
		if err != nil {
			return nil, &ValidationError{Path: "keymap.leader", Message: err.Error(), Value: k.Leader, Code: ErrCodeInvalidValue}
		}
		m.SetLeader(ev)
	}
	for _, s := range k.scopes() {
		for lhs, rhs := range s.m {
			if err := m.Set(s.scope, lhs, rhs); err != nil {
				return nil, &ValidationError{Path: "keymap." + s.name + "." + lhs, Message: err.Error(), Code: ErrCodeInvalidValue}
			}
		}
	}
	return m, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	s := dispatcher.DefaultSettings()
	return &Config{
		Editor: EditorConfig{
			TabStop:    s.TabStop,
			ShiftWidth: s.ShiftWidth,
			ExpandTab:  s.ExpandTab,
			AutoIndent: s.AutoIndent,
			ScrollOff:  s.ScrollOff,
		},
		Search: SearchConfig{
			IgnoreCase: s.IgnoreCase,
			SmartCase:  s.SmartCase,
			WrapScan:   s.WrapScan,
		},
		History: HistoryConfig{
			UndoLevels:     s.UndoLevels,
			JumpListSize:   mark.DefaultListSize,
			ChangeListSize: mark.DefaultListSize,
			MacroDepth:     macro.DefaultMaxDepth,
		},
		Keymap: KeymapConfig{Leader: `\`},
	}
}

// field binds a setting path to its value. Exactly one of i and b is set.
type field struct {
	path string
	i    *int
	b    *bool
	min  int
}

func (c *Config) fields() []field {
	return []field{
		{path: "editor.tabstop", i: &c.Editor.TabStop, min: 1},
		{path: "editor.shiftwidth", i: &c.Editor.ShiftWidth},
		{path: "editor.expandtab", b: &c.Editor.ExpandTab},
		{path: "editor.autoindent", b: &c.Editor.AutoIndent},
		{path: "editor.scrolloff", i: &c.Editor.ScrollOff},
		{path: "search.ignorecase", b: &c.Search.IgnoreCase},
		{path: "search.smartcase", b: &c.Search.SmartCase},
		{path: "search.wrapscan", b: &c.Search.WrapScan},
		{path: "history.undolevels", i: &c.History.UndoLevels, min: 1},
		{path: "history.jumplist_size", i: &c.History.JumpListSize, min: 1},
		{path: "history.changelist_size", i: &c.History.ChangeListSize, min: 1},
		{path: "history.macro_depth", i: &c.History.MacroDepth, min: 1},
	}
}

// Validate checks every numeric setting against its lower bound and every
// mapping for well-formed keys, and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Keymap.Build(); err != nil {
		errs = append(errs, err)
	}
	for _, f := range c.fields() {
		if f.i != nil && *f.i < f.min {
			errs = append(errs, &ValidationError{
				Path:    f.path,
				Message: fmt.Sprintf("must be at least %d", f.min),
				Value:   *f.i,
				Code:    ErrCodeOutOfRange,
			})
		}
	}
	return errors.Join(errs...)
}

// Settings returns the options :set can change later.
func (c *Config) Settings() dispatcher.Settings {
	return dispatcher.Settings{
		TabStop:    c.Editor.TabStop,
		ShiftWidth: c.Editor.ShiftWidth,
		ExpandTab:  c.Editor.ExpandTab,
		AutoIndent: c.Editor.AutoIndent,
		IgnoreCase: c.Search.IgnoreCase,
		SmartCase:  c.Search.SmartCase,
		WrapScan:   c.Search.WrapScan,
		ScrollOff:  c.Editor.ScrollOff,
		UndoLevels: c.History.UndoLevels,
	}
}

// Options converts the configuration into dispatcher options. A keymap
// that fails to build is left out; Validate reports it.
func (c *Config) Options() []dispatcher.Option {
	opts := []dispatcher.Option{
		dispatcher.WithSettings(c.Settings()),
		dispatcher.WithJumpListSize(c.History.JumpListSize),
		dispatcher.WithChangeListSize(c.History.ChangeListSize),
		dispatcher.WithMacroDepth(c.History.MacroDepth),
	}
	if m, err := c.Keymap.Build(); err == nil {
		opts = append(opts, dispatcher.WithKeymap(m))
	}
	return opts
}
