package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/dispatcher/ex"
	"github.com/dshills/modalcore/internal/engine"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/renderer"
	"github.com/dshills/modalcore/internal/session"
)

// editor is the host side of a dispatcher: files, sessions and the
// commands the core forwards.
type editor struct {
	d      *dispatcher.Dispatcher
	logger *slog.Logger
	store  *session.BoltStore
	name   string
	quit   bool
}

func newEditor(logger *slog.Logger, store *session.BoltStore, name string) *editor {
	return &editor{logger: logger, store: store, name: name}
}

// start creates the dispatcher. A saved session takes precedence over
// the files on the command line.
func (e *editor) start(files []string, opts []dispatcher.Option) error {
	if e.store != nil {
		st, err := e.store.Load(e.name)
		switch {
		case err == nil:
			e.d = dispatcher.New("", opts...)
			if err := session.Apply(e.d, st); err != nil {
				e.logger.Warn("session restored with errors", "name", e.name, "err", err)
			}
			return nil
		case !errors.Is(err, session.ErrNotFound):
			return err
		}
	}

	path, text := "", ""
	if len(files) > 0 {
		path = files[0]
		var err error
		if text, err = readFile(path); err != nil {
			return err
		}
	}
	e.d = dispatcher.New(text, append(opts, dispatcher.WithPath(path))...)
	for _, p := range files[min(1, len(files)):] {
		text, err := readFile(p)
		if err != nil {
			return err
		}
		e.d.Open(text, engine.WithPath(p))
	}
	return nil
}

// readFile returns the content of path, or "" for a file that does not
// exist yet.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return string(data), err
}

func (e *editor) loop(term *renderer.Terminal) int {
	r := renderer.New(term.Screen())
	r.Draw(e.d, dispatcher.Outcome{Mode: e.d.Mode()})

	for !e.quit {
		ev, ok := term.PollEvent()
		if !ok {
			break
		}
		var out dispatcher.Outcome
		switch {
		case ev.Resize:
			width, height := term.Size()
			e.d.Resize(width, height)
			term.Screen().Sync()
		case ev.Paste != "":
			off := e.d.Snapshot().Offset
			if err := e.d.ApplyExternalEdit(buffer.Range{Start: off, End: off}, ev.Paste, "paste"); err != nil {
				out.Message = err.Error()
			}
		case ev.IsKey:
			out = e.d.SubmitKey(ev.Key)
		}
		term.SetCursorStyle(e.d.Mode())
		r.Draw(e.d, out)
	}

	if e.store != nil {
		if err := e.store.Save(e.name, session.Capture(e.d)); err != nil {
			term.Shutdown()
			fmt.Fprintf(os.Stderr, "Error: saving session: %v\n", err)
			return 1
		}
	}
	return 0
}

// ex runs the commands the core forwards.
func (e *editor) ex(cmd ex.Command) (string, error) {
	e.logger.Debug("host command", "name", cmd.Name, "args", cmd.Args, "bang", cmd.Bang)
	switch cmd.Name {
	case "w", "write":
		return e.write(strings.TrimSpace(cmd.Args))
	case "q", "quit", "qa", "qall":
		return "", e.close(cmd.Bang)
	case "wq", "x", "xit":
		msg, err := e.write(strings.TrimSpace(cmd.Args))
		if err != nil {
			return "", err
		}
		return msg, e.close(true)
	case "e", "edit":
		return e.edit(strings.TrimSpace(cmd.Args))
	case "mks", "mksession":
		return e.saveSession(strings.TrimSpace(cmd.Args))
	default:
		return "", fmt.Errorf("E492: Not an editor command: %s", cmd.Line)
	}
}

func (e *editor) write(path string) (string, error) {
	cur := e.d.Current()
	if path == "" {
		path = cur.Path()
	}
	if path == "" {
		return "", errors.New("E32: No file name")
	}
	text := cur.Text()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("E212: Can't open file for writing: %w", err)
	}
	if cur.Path() == "" {
		cur.SetPath(path)
	}
	if path == cur.Path() {
		cur.SetModified(false)
	}
	lines := cur.Buffer().LineCount()
	if strings.HasSuffix(text, "\n") {
		lines--
	}
	return fmt.Sprintf("%q %dL, %dB written", path, lines, len(text)), nil
}

func (e *editor) close(force bool) error {
	if !force {
		for _, b := range e.d.Buffers() {
			if b.Modified() && b.Path() != "" {
				return fmt.Errorf("E37: No write since last change for %s (add ! to override)", b.Path())
			}
		}
	}
	e.quit = true
	return nil
}

func (e *editor) edit(path string) (string, error) {
	if path == "" {
		return "", errors.New("E32: No file name")
	}
	for _, b := range e.d.Buffers() {
		if b.Path() == path {
			return "", e.d.Show(b.ID())
		}
	}
	text, err := readFile(path)
	if err != nil {
		return "", err
	}
	b := e.d.Open(text, engine.WithPath(path))
	if err := e.d.Show(b.ID()); err != nil {
		return "", err
	}
	return fmt.Sprintf("%q %dL, %dB", path, b.Buffer().LineCount(), len(text)), nil
}

func (e *editor) saveSession(name string) (string, error) {
	if e.store == nil {
		return "", errors.New("no session database; start with -session")
	}
	if name == "" {
		name = e.name
	}
	if err := e.store.Save(name, session.Capture(e.d)); err != nil {
		return "", err
	}
	return fmt.Sprintf("session %q saved", name), nil
}
