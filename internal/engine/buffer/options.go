package buffer

// DefaultTabWidth is the tab width used for display columns unless overridden.
const DefaultTabWidth = 8

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the tab width used for display columns.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(b *Buffer) {
		b.nextObs++
		b.observers = append(b.observers, observerEntry{id: b.nextObs, o: o})
	}
}
