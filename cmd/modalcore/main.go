// Package main is a minimal terminal host for the modal editing core: it
// reads files, feeds terminal keys to a dispatcher and draws the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/renderer"
	"github.com/dshills/modalcore/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath  string
	sessionPath string
	sessionName string
	logPath     string
	files       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, closeLog, err := openLog(opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var store *session.BoltStore
	if opts.sessionPath != "" {
		store, err = session.OpenBoltStore(opts.sessionPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer store.Close()
	}

	term, err := renderer.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	e := newEditor(logger, store, opts.sessionName)
	width, height := term.Size()
	dopts := append(cfg.Options(),
		dispatcher.WithLogger(logger),
		dispatcher.WithHost(dispatcher.HostFunc(e.ex)),
		dispatcher.WithSize(width, height),
	)
	if (register.SystemClipboard{}).Available() {
		dopts = append(dopts, dispatcher.WithClipboard(register.SystemClipboard{}))
	}
	if err := e.start(opts.files, dopts); err != nil {
		term.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Ctrl-C reaches us as a key in raw mode; SIGINT only arrives from
	// outside and interrupts a running macro.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT)
	go func() {
		for range signals {
			e.d.Interrupt()
		}
	}()

	return e.loop(term)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to a TOML configuration file (shorthand)")
	flag.StringVar(&opts.sessionPath, "session", "", "Session database; restores and saves the session named by -name")
	flag.StringVar(&opts.sessionName, "name", "default", "Session name used with -session")
	flag.StringVar(&opts.logPath, "log", "", "Write debug logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "modalcore - modal text editing core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: modalcore [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("modalcore %s (%s)\n", version, commit)
		os.Exit(0)
	}
	opts.files = flag.Args()
	return opts
}

func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}

// loadConfig reads the file at path, if any, then the environment.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if cfg, err = config.Load(f); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(errors.New("invalid configuration"), err)
	}
	return cfg, nil
}
