// Package main is the entry point for the XConsole demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/NBAH79/XConsole/internal/app"
	"github.com/NBAH79/XConsole/internal/config"
	"github.com/NBAH79/XConsole/internal/logging"
	"github.com/NBAH79/XConsole/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	debug      bool
	logLevel   string
	logFile    string
	scriptPath string
	watch      bool
	fit        bool
	dumpConfig bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.NewLoader().Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.dumpConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: xconsole needs a terminal on stdout")
		return 1
	}
	if opts.fit {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cfg.Window.Width, cfg.Window.Height = w, h
		}
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(logger)

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := terminal.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, terminal, app.Options{
		Input:  terminal,
		Logger: logger,
	})
	err = application.Run(ctx)

	// restore the terminal before printing anything
	terminal.Shutdown()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// applyFlags lets command-line flags override the file settings.
func applyFlags(cfg *config.Config, opts options) {
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.scriptPath != "" {
		cfg.Script.Path = opts.scriptPath
	}
	if opts.watch {
		cfg.Script.Watch = true
	}
}

// newLogger opens the log file. Without one, logging is discarded because
// the terminal belongs to the renderer.
func newLogger(cfg config.LogConfig) (*logging.Logger, func(), error) {
	level, _ := logging.ParseLevel(cfg.Level)
	if cfg.File == "" {
		return logging.New(logging.Config{Level: level, Output: io.Discard}), func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := logging.New(logging.Config{Level: level, Output: f, Prefix: "xconsole"})
	logger.Info("xconsole %s (%s) starting", version, commit)
	return logger, func() { _ = f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "xconsole.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "xconsole.toml", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.debug, "d", false, "Enable debug logging (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script drawing an extra sprite")
	flag.StringVar(&opts.scriptPath, "s", "", "Lua script drawing an extra sprite (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the script when it changes")
	flag.BoolVar(&opts.fit, "fit", false, "Size the window to the terminal")
	flag.BoolVar(&opts.dumpConfig, "dump-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "XConsole - buffered text-mode rendering demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: xconsole [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress any key to quit.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("XConsole %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
