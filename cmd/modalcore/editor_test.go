package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/session"
)

func newTestEditor(t *testing.T, files ...string) *editor {
	t.Helper()
	e := newEditor(slog.New(slog.DiscardHandler), nil, "")
	opts := []dispatcher.Option{dispatcher.WithHost(dispatcher.HostFunc(e.ex))}
	if err := e.start(files, opts); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestWriteAndQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEditor(t, path)

	e.d.SubmitKeys("x")
	out := e.d.SubmitKeys(":q<CR>")
	if e.quit || !strings.HasPrefix(out.Message, "E37") {
		t.Fatalf(":q with changes: quit=%v message=%q", e.quit, out.Message)
	}

	out = e.d.SubmitKeys(":w<CR>")
	if !strings.Contains(out.Message, "written") {
		t.Errorf(":w message = %q", out.Message)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ello\n" {
		t.Errorf("file = %q", data)
	}

	e.d.SubmitKeys(":q<CR>")
	if !e.quit {
		t.Error(":q after :w did not quit")
	}
}

func TestEditOpensFile(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(other, []byte("bee"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestEditor(t)

	e.d.SubmitKeys(":e " + other + "<CR>")
	if got := e.d.Current().Text(); got != "bee" {
		t.Errorf("current text = %q", got)
	}
	if got := e.d.Current().Path(); got != other {
		t.Errorf("current path = %q", got)
	}
}

func TestUnknownHostCommand(t *testing.T) {
	e := newTestEditor(t)
	out := e.d.SubmitKeys(":frobnicate<CR>")
	if !strings.HasPrefix(out.Message, "E492") {
		t.Errorf("message = %q", out.Message)
	}
}

func TestSessionSavedAndRestored(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	store, err := session.OpenBoltStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	e := newEditor(slog.New(slog.DiscardHandler), store, "work")
	if err := e.start(nil, []dispatcher.Option{dispatcher.WithHost(dispatcher.HostFunc(e.ex))}); err != nil {
		t.Fatal(err)
	}
	e.d.SubmitKeys("ihello<Esc>")
	if out := e.d.SubmitKeys(":mksession<CR>"); !strings.Contains(out.Message, "saved") {
		t.Fatalf(":mksession message = %q", out.Message)
	}

	restored := newEditor(slog.New(slog.DiscardHandler), store, "work")
	if err := restored.start(nil, nil); err != nil {
		t.Fatal(err)
	}
	if got := restored.d.Current().Text(); got != "hello" {
		t.Errorf("restored text = %q", got)
	}
}
