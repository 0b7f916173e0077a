package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/level"
	"github.com/tomz197/rotander/internal/loop"
	"golang.org/x/term"
)

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("ROTANDER_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	levels, err := newLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "levels: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Levels:   levels,
		Settings: config.Default(),
		Logger:   logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to path, or nowhere when path is empty: stdout and stderr
// belong to the game screen.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "rotander",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

// newLevels reads ROTANDER_LEVELS (a directory of N.json files, built-in
// levels when empty) and ROTANDER_LEVEL (the first level number).
func newLevels() (*level.Manager, error) {
	start, err := config.GetEnvInt("ROTANDER_LEVEL", 1)
	if err != nil {
		return nil, err
	}
	return level.NewManagerFromDir(config.GetEnv("ROTANDER_LEVELS", ""), start)
}
