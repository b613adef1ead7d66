package engine

import (
	"log/slog"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.content = content
	}
}

// WithPath associates a file path with the buffer.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.path = path
	}
}

// WithID overrides the generated buffer ID, used when restoring a session.
func WithID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}

// WithTabWidth sets the tab width for display columns.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithUndoLevels sets the maximum number of undo units kept.
func WithUndoLevels(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.undoLevels = n
		}
	}
}

// WithChangeListSize bounds the change list.
func WithChangeListSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.changeListSize = n
		}
	}
}

// WithObserver registers a buffer observer after the built-in ones.
func WithObserver(o buffer.Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
