package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dshills/modalcore/internal/dispatcher/ex"
	"github.com/dshills/modalcore/internal/engine"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/macro"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/layout"
	"github.com/dshills/modalcore/internal/motion"
)

// Dispatcher is the modal state machine of one editing session. It owns
// the buffers, registers, marks and windows of the session and turns key
// events into edits.
//
// A Dispatcher is used from a single goroutine. Interrupt is the only
// method that may be called concurrently.
type Dispatcher struct {
	// Configuration
	settings       Settings
	logger         *slog.Logger
	host           Host
	clipboard      register.ClipboardProvider
	matcher        motion.Matcher
	path           string
	width, height  int
	jumpListSize   int
	changeListSize int
	macroDepth     int

	// Buffers and windows
	buffers map[string]*engine.Engine
	order   []string
	layout  *layout.Layout

	// Session state shared by every buffer
	modes   *mode.Manager
	parser  *vim.Parser
	regs    *register.Store
	globals *mark.Globals
	jumps   *mark.JumpList
	keymap  *keymap.Map
	mapBuf  []key.Event

	find      motion.FindState
	search    motion.SearchState
	lastSub   *ex.Substitute
	lastEx    string
	searchReg string

	recorder  *macro.Recorder
	player    *macro.Player
	interrupt atomic.Bool

	// Mode-specific state
	visual     visualState
	lastVisual *lastVisual
	insert     *insertSession
	cmdline    *cmdline

	// Dot repeat
	lastChange *change
	repeating  bool

	out Outcome
}

// New creates a session editing text in a single window.
func New(text string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		buffers: make(map[string]*engine.Engine),
		logger:  slog.New(slog.DiscardHandler),
	}
	defaults(d)
	for _, opt := range opts {
		opt(d)
	}

	var regOpts []register.Option
	if d.clipboard != nil {
		regOpts = append(regOpts, register.WithClipboard(d.clipboard))
	}
	d.regs = register.New(regOpts...)
	if d.keymap == nil {
		d.keymap = keymap.New()
	}
	d.globals = mark.NewGlobals()
	d.jumps = mark.NewJumpList(d.jumpListSize)
	d.modes = mode.NewManager()
	d.modes.OnChange(func(from, to mode.Mode) {
		d.logger.Debug("mode change", "from", from.Name(), "to", to.Name())
	})
	d.parser = vim.NewParser()
	d.recorder = macro.NewRecorder()
	d.player = macro.NewPlayer(d.loadMacro,
		macro.WithMaxDepth(d.macroDepth),
		macro.WithInterrupt(d.interrupt.Load),
		macro.WithLogger(d.logger),
	)

	e := d.Open(text, engine.WithPath(d.path))
	d.layout = layout.New(d.width, d.height, e.ID())
	d.layout.SetScrollOff(d.settings.ScrollOff, 0)
	d.regs.SetReadOnly('%', e.Path())
	d.settle()
	return d
}

// ===========================================================================
// Buffers
// ===========================================================================

// Open adds a buffer holding text to the session without showing it.
func (d *Dispatcher) Open(text string, opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithContent(text),
		engine.WithTabWidth(d.settings.TabStop),
		engine.WithUndoLevels(d.settings.UndoLevels),
		engine.WithChangeListSize(d.changeListSize),
		engine.WithLogger(d.logger),
	}
	e := engine.New(append(base, opts...)...)
	id := e.ID()
	e.AddObserver(d.globals.Observer(id))
	e.AddObserver(d.jumps.Observer(id))
	e.AddObserver(buffer.ObserverFunc(func(ed buffer.Edit) { d.shiftCursors(id, ed) }))

	d.buffers[id] = e
	d.order = append(d.order, id)
	d.logger.Debug("buffer opened", "buffer", id, "path", e.Path())
	return e
}

// Show displays the buffer with the given id in the current window.
func (d *Dispatcher) Show(id string) error {
	if _, ok := d.buffers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBuffer, id)
	}
	d.switchBuffer(id)
	d.settle()
	return nil
}

// Buffer returns the buffer with the given id.
func (d *Dispatcher) Buffer(id string) (*engine.Engine, bool) {
	e, ok := d.buffers[id]
	return e, ok
}

// Buffers returns the open buffers in the order they were opened.
func (d *Dispatcher) Buffers() []*engine.Engine {
	out := make([]*engine.Engine, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.buffers[id])
	}
	return out
}

// Current returns the buffer in the current window.
func (d *Dispatcher) Current() *engine.Engine {
	return d.eng()
}

func (d *Dispatcher) switchBuffer(id string) {
	if id == d.win().BufferID() {
		return
	}
	if d.isVisual() {
		d.exitVisual()
	}
	d.win().SetBuffer(id)
	d.regs.SetReadOnly('%', d.buffers[id].Path())
}

// shiftCursors keeps the cursors of every window on a buffer in place
// across edits, wherever they came from.
func (d *Dispatcher) shiftCursors(id string, ed buffer.Edit) {
	if d.layout == nil {
		return
	}
	for _, w := range d.layout.ForBuffer(id) {
		w.Cursor = w.Cursor.Transform(ed)
	}
	if d.isVisual() && d.win().BufferID() == id {
		d.visual.anchor, _ = ed.TransformOffset(d.visual.anchor)
	}
}

// ===========================================================================
// Accessors
// ===========================================================================

// Settings returns the current option values.
func (d *Dispatcher) Settings() Settings { return d.settings }

// Mode returns the current mode.
func (d *Dispatcher) Mode() mode.Mode { return d.modes.Current() }

// Layout returns the window layout.
func (d *Dispatcher) Layout() *layout.Layout { return d.layout }

// Registers returns the register store.
func (d *Dispatcher) Registers() *register.Store { return d.regs }

// Globals returns the uppercase marks.
func (d *Dispatcher) Globals() *mark.Globals { return d.globals }

// Keymap returns the user key mappings.
func (d *Dispatcher) Keymap() *keymap.Map { return d.keymap }

// JumpList returns the jump list.
func (d *Dispatcher) JumpList() *mark.JumpList { return d.jumps }

// Resize changes the screen size.
func (d *Dispatcher) Resize(width, height int) {
	d.layout.Resize(width, height)
	d.settle()
}

// Interrupt stops a running macro or counted command after the current
// iteration. It is safe to call from any goroutine.
func (d *Dispatcher) Interrupt() {
	d.interrupt.Store(true)
}

func (d *Dispatcher) interrupted() bool {
	return d.interrupt.Load()
}

// ===========================================================================
// Key handling
// ===========================================================================

type fingerprint struct {
	rev      uint64
	offset   int
	mode     mode.Mode
	view     layout.State
	window   int
	buffer   string
	pending  string
	selected int
}

func (d *Dispatcher) fingerprint() fingerprint {
	w := d.win()
	f := fingerprint{
		rev:     d.buf().Revision(),
		offset:  w.Cursor.Offset,
		mode:    d.modes.Current(),
		view:    w.View().State(),
		window:  w.ID(),
		buffer:  w.BufferID(),
		pending: d.pendingEcho(),
	}
	if d.isVisual() {
		f.selected = d.visual.anchor
	}
	return f
}

// SubmitKey processes one key event.
func (d *Dispatcher) SubmitKey(ev key.Event) (out Outcome) {
	d.interrupt.Store(false)
	d.out = Outcome{}
	before := d.fingerprint()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("key handler panic", "key", ev.String(), "panic", r)
			d.recover()
			out = Outcome{Redraw: true, Mode: d.modes.Current(), Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	if d.recorder.IsRecording() {
		d.recorder.Record(ev)
	}
	if err := d.mapKey(ev); err != nil {
		d.report(err)
	}
	d.settle()

	out = d.out
	out.Mode = d.modes.Current()
	out.PendingEcho = d.pendingEcho()
	out.Redraw = out.Redraw || out.Message != "" || before != d.fingerprint()
	return out
}

// SubmitKeys processes a sequence in key notation and returns the last
// outcome, with the messages of every key.
func (d *Dispatcher) SubmitKeys(keys string) Outcome {
	var out Outcome
	var forwarded []string
	message := ""
	for _, ev := range key.ParseSequence(keys) {
		out = d.SubmitKey(ev)
		forwarded = append(forwarded, out.Forwarded...)
		if out.Message != "" {
			message = out.Message
		}
	}
	out.Forwarded = forwarded
	out.Message = message
	return out
}

// handleKey routes ev by mode once mappings are applied. Macro playback
// and dot repeat reach it too, so it must not record.
func (d *Dispatcher) handleKey(ev key.Event) error {
	switch d.modes.Current() {
	case mode.Insert, mode.Replace:
		return d.insertKey(ev)
	case mode.CommandLine:
		return d.cmdlineKey(ev)
	default:
		return d.normalKey(ev)
	}
}

func (d *Dispatcher) normalKey(ev key.Event) error {
	hadPending := d.parser.Pending()
	res := d.parser.Parse(ev)

	switch res.Status {
	case vim.StatusPending:
		if d.parser.OperatorPending() && d.modes.Current() == mode.Normal {
			d.setMode(mode.OperatorPending)
		}
		return nil
	case vim.StatusCancelled:
		d.leaveOperatorPending()
		if !hadPending && d.isVisual() {
			d.exitVisual()
		}
		return nil
	case vim.StatusInvalid:
		d.leaveOperatorPending()
		return res.Err
	}

	d.leaveOperatorPending()
	cmd := *res.Command
	d.logger.Debug("command", "keys", cmd.Keys, "count", cmd.Count)
	return d.run(cmd)
}

func (d *Dispatcher) setMode(m mode.Mode) {
	d.modes.Switch(m)
	d.parser.SetVisual(m.IsVisual())
}

func (d *Dispatcher) leaveOperatorPending() {
	if d.modes.Current() == mode.OperatorPending {
		d.setMode(mode.Normal)
	}
}

// report turns an error into the status message. Failed motions and
// invalid keys only beep.
func (d *Dispatcher) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, motion.ErrFailed),
		errors.Is(err, buffer.ErrOutOfRange),
		errors.Is(err, vim.ErrInvalidCommand):
		d.logger.Debug("command failed", "err", err)
	case errors.Is(err, macro.ErrInterrupted):
		d.out.Message = ErrInterrupted.Error()
	default:
		d.logger.Debug("command error", "err", err)
		d.out.Message = err.Error()
	}
}

// settle clamps the cursor for the mode and scrolls it into view.
func (d *Dispatcher) settle() {
	for _, w := range d.layout.Windows() {
		e := d.buffers[w.BufferID()]
		w.View().SetLineCount(e.Buffer().LineCount())
		w.Cursor.Offset = max(0, min(w.Cursor.Offset, e.Buffer().Len()))
	}

	w, buf := d.win(), d.buf()
	switch d.modes.Current() {
	case mode.Insert, mode.Replace, mode.OperatorPending, mode.CommandLine:
	default:
		w.Cursor.Offset = motion.ClampNormal(buf, w.Cursor.Offset)
	}
	pos := buf.Position(w.Cursor.Offset)
	w.View().ScrollToReveal(pos.Line, buf.VisualColumn(pos))

	if d.search.Pattern != d.searchReg {
		d.searchReg = d.search.Pattern
		d.regs.SetReadOnly('/', d.searchReg)
	}
}

// recover leaves the session usable after a panic in a key handler.
func (d *Dispatcher) recover() {
	d.parser.Reset()
	d.insert = nil
	d.cmdline = nil
	e := d.eng()
	for e.InChange() {
		e.EndChange(d.pos())
	}
	d.setMode(mode.Normal)
	d.settle()
}

func (d *Dispatcher) pendingEcho() string {
	if d.cmdline != nil {
		return string(d.cmdline.prompt) + string(d.cmdline.text)
	}
	return d.parser.PendingKeys() + key.Format(d.mapBuf)
}

// ===========================================================================
// Snapshots and external edits
// ===========================================================================

// Snapshot returns what the host needs to draw the current window.
func (d *Dispatcher) Snapshot() State {
	w, buf := d.win(), d.buf()
	st := State{
		Text:      buf.Text(),
		Offset:    w.Cursor.Offset,
		Cursor:    buf.Position(w.Cursor.Offset),
		Mode:      d.modes.Current(),
		Buffer:    w.BufferID(),
		Viewport:  w.View().State(),
		Recording: d.recorder.CurrentRegister(),
	}
	if d.cmdline != nil {
		st.CommandLine = d.pendingEcho()
	}
	if d.isVisual() {
		sel := d.selection()
		st.Selection = &sel
	}
	return st
}

// MoveCursor places the cursor of the current window at offset, clamped
// to the buffer. It is meant for hosts handling mouse clicks and restoring
// sessions; it does not record a jump.
func (d *Dispatcher) MoveCursor(offset int) {
	d.moveTo(max(0, min(offset, d.buf().Len())))
	d.settle()
}

// ApplyExternalEdit replaces r in the current buffer with text as one
// undo unit. source names the collaborator, such as "lsp" or "format".
// During Insert mode the edit joins the open insert.
func (d *Dispatcher) ApplyExternalEdit(r buffer.Range, text, source string) error {
	if err := d.eng().Apply("external:"+source, r, text, d.pos()); err != nil {
		return err
	}
	d.logger.Debug("external edit", "source", source, "range", r.String(), "len", len(text))
	d.settle()
	return nil
}

// ===========================================================================
// Helpers
// ===========================================================================

func (d *Dispatcher) win() *layout.Window  { return d.layout.Current() }
func (d *Dispatcher) eng() *engine.Engine  { return d.buffers[d.win().BufferID()] }
func (d *Dispatcher) buf() *buffer.Buffer  { return d.eng().Buffer() }
func (d *Dispatcher) off() int             { return d.win().Cursor.Offset }
func (d *Dispatcher) pos() buffer.Position { return d.buf().Position(d.off()) }
func (d *Dispatcher) line() int            { return d.buf().LineAt(d.off()) }

// moveTo places the cursor, forgetting the desired column.
func (d *Dispatcher) moveTo(off int) {
	d.win().Cursor = cursor.New(off)
}

func (d *Dispatcher) firstNonBlank(line int) int {
	buf := d.buf()
	return buf.Offset(buffer.Pos(line, buf.FirstNonBlank(line)))
}

// begin and end bracket one undo unit on the current buffer.
func (d *Dispatcher) begin(name string) {
	d.eng().BeginChange(name, d.pos())
}

func (d *Dispatcher) end() {
	d.eng().EndChange(d.pos())
}

// env builds the motion environment of the current window.
func (d *Dispatcher) env(pastEnd bool) *motion.Env {
	w := d.win()
	view := w.View()
	view.SetLineCount(d.buf().LineCount())
	return &motion.Env{
		Buf:     d.buf(),
		Find:    &d.find,
		Search:  &d.search,
		Matcher: d.matcher,
		Mark:    d.markOffset,
		View: motion.Viewport{
			Top:       view.TopLine(),
			Bottom:    view.BottomLine(),
			ScrollOff: view.ScrollOff(),
		},
		IgnoreCase:  d.settings.IgnoreCase,
		SmartCase:   d.settings.SmartCase,
		WrapScan:    d.settings.WrapScan,
		PastEnd:     pastEnd,
		Interrupted: d.interrupted,
	}
}

// markOffset looks up a mark in the current buffer. An uppercase mark in
// another buffer is reported as not set; jumps switch buffers first.
func (d *Dispatcher) markOffset(name rune) (int, error) {
	if mark.IsGlobal(name) {
		g, err := d.globals.Get(name)
		if err != nil {
			return 0, err
		}
		if g.BufferID != d.win().BufferID() {
			return 0, mark.ErrMarkNotSet
		}
		return g.Offset, nil
	}
	return d.eng().Marks().Get(name)
}

// pushJump records the cursor as a jump origin.
func (d *Dispatcher) pushJump() {
	d.jumps.Push(mark.Jump{BufferID: d.win().BufferID(), Offset: d.off()})
	d.eng().Marks().Set(mark.Context, d.off())
}

// reportLines sets the "N more lines" style message Vim shows for
// changes of more than two lines.
func (d *Dispatcher) reportLines(n int, what string) {
	if n > 2 {
		d.out.Message = fmt.Sprintf("%d %s", n, what)
	}
}
