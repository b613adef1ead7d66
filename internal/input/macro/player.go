package macro

import (
	"io"
	"log/slog"

	"github.com/dshills/modalcore/internal/input/key"
)

// DefaultMaxDepth is the default nesting limit for macros that run other
// macros.
const DefaultMaxDepth = 100

// EventHandler processes one replayed key event. A non-nil error aborts
// the rest of the playback.
type EventHandler func(event key.Event) error

// Loader returns the events stored in a register.
type Loader func(register rune) ([]key.Event, error)

// frame is one macro being replayed.
type frame struct {
	register  rune
	events    []key.Event
	pos       int
	remaining int
}

// Player replays macros. Nested @ commands do not recurse: the handler
// calls Play again, which pushes a frame onto the stack the outer Play
// is already draining.
type Player struct {
	load        Loader
	maxDepth    int
	interrupted func() bool
	logger      *slog.Logger

	frames     []frame
	lastPlayed rune
}

// Option configures a Player.
type Option func(*Player)

// WithMaxDepth sets the nesting limit.
func WithMaxDepth(depth int) Option {
	return func(p *Player) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithInterrupt sets the function polled before every iteration.
func WithInterrupt(interrupted func() bool) Option {
	return func(p *Player) {
		p.interrupted = interrupted
	}
}

// WithLogger sets the logger for playback frames.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlayer creates a player that reads macros through load.
func NewPlayer(load Loader, opts ...Option) *Player {
	p := &Player{
		load:     load,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsPlaying reports whether a macro is being replayed.
func (p *Player) IsPlaying() bool {
	return len(p.frames) > 0
}

// Depth returns the number of active frames.
func (p *Player) Depth() int {
	return len(p.frames)
}

// LastPlayed returns the register of the last macro played, for @@.
// Returns 0 if no macro has been played.
func (p *Player) LastPlayed() rune {
	return p.lastPlayed
}

// Play replays the macro in register count times, feeding each event to
// handle. Register '@' replays the last macro played.
//
// When called from inside handle during playback, Play only schedules the
// nested macro and returns; the outer call runs it. On any error the whole
// playback stops, the frame stack is cleared and the error is returned by
// the outermost Play.
func (p *Player) Play(register rune, count int, handle EventHandler) error {
	if register == '@' {
		if p.lastPlayed == 0 {
			return ErrNoPrevious
		}
		register = p.lastPlayed
	}
	nested := p.IsPlaying()
	if err := p.push(register, count); err != nil {
		return err
	}
	if nested {
		return nil
	}
	defer func() { p.frames = p.frames[:0] }()
	return p.run(handle)
}

func (p *Player) push(register rune, count int) error {
	if len(p.frames) >= p.maxDepth {
		p.logger.Warn("macro recursion limit reached", "register", string(register), "depth", p.maxDepth)
		return &RecursionError{Register: register, Depth: p.maxDepth}
	}
	events, err := p.load(register)
	if err != nil {
		return err
	}
	p.lastPlayed = register
	if len(events) == 0 {
		// an empty macro changes nothing
		return nil
	}
	p.frames = append(p.frames, frame{
		register:  register,
		events:    events,
		remaining: max(count, 1),
	})
	p.logger.Debug("macro frame", "register", string(register), "count", max(count, 1), "depth", len(p.frames))
	return nil
}

// run drains the frame stack.
func (p *Player) run(handle EventHandler) error {
	for len(p.frames) > 0 {
		top := len(p.frames) - 1
		f := &p.frames[top]
		if f.pos == len(f.events) {
			f.remaining--
			if f.remaining == 0 {
				p.frames = p.frames[:top]
				continue
			}
			f.pos = 0
		}
		if f.pos == 0 && p.interrupted != nil && p.interrupted() {
			return ErrInterrupted
		}

		ev := f.events[f.pos]
		f.pos++
		// handle may push frames, so f must not be used after this
		if err := handle(ev); err != nil {
			p.logger.Debug("macro aborted", "register", string(p.frames[top].register), "err", err)
			return err
		}
	}
	return nil
}
