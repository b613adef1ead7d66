// Package config loads the options of an editing session.
//
// Configuration is resolved in layers, later layers overriding earlier
// ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML document handed in by the host (Load, Parse)
//  3. Environment variables prefixed with MODALCORE_ (ApplyEnv)
//
// The package does no file discovery; the host decides where the TOML
// comes from. A loaded Config is turned into dispatcher options with
// Options:
//
//	cfg, err := config.Load(f)
//	if err != nil {
//		return err
//	}
//	d := dispatcher.New(text, cfg.Options()...)
//
// # File format
//
//	[editor]
//	tabstop = 4
//	shiftwidth = 4
//	expandtab = true
//	autoindent = true
//	scrolloff = 3
//
//	[search]
//	ignorecase = true
//	smartcase = true
//	wrapscan = true
//
//	[history]
//	undolevels = 1000
//	jumplist_size = 100
//	changelist_size = 100
//	macro_depth = 100
//
//	[keymap]
//	leader = "<Space>"
//
//	[keymap.normal]
//	"<Leader>w" = ":w<CR>"
//
//	[keymap.insert]
//	jk = "<Esc>"
//
// Unknown keys are rejected so that typos do not pass silently.
package config
