package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/braindots/internal/audio"
	"github.com/tomz197/braindots/internal/config"
	"github.com/tomz197/braindots/internal/loop/client"
	"github.com/tomz197/braindots/internal/loop/server"
	"github.com/tomz197/braindots/internal/store"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var scores store.Scores = store.NewMemory()
	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			logger.Warn("best score will not be saved", "path", cfg.Store.Path, "err", err)
		} else {
			defer db.Close()
			scores = db
		}
	}

	var sound audio.Player = audio.Silent{}
	if cfg.Audio.Enabled {
		sp, err := audio.NewSpeaker(cfg.Audio.Volume)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sp.Close()
			sound = sp
		}
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

	c := client.NewClient(server.NewServer(logger), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Scores: scores,
		Sound:  sound,
		Logger: logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to the configured file. The terminal belongs to the game,
// so without a file logs are discarded.
func newLogger(cfg config.LogConfig) (*log.Logger, func(), error) {
	if cfg.File == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger, func() { f.Close() }, nil
}
