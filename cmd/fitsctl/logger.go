package main

import (
	"io"
	"log/slog"
	"os"
)

// log is the global structured logger. It discards everything until
// initLogger enables it from the --verbose flag.
var log = slog.New(slog.NewTextHandler(io.Discard, nil))

// initLogger configures structured logging. Called from the root
// command before any subcommand runs.
func initLogger(enabled bool) {
	if !enabled {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
