package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/kokaton/internal/config"
	"github.com/tomz197/kokaton/internal/loop/client"
	loopconfig "github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/loop/server"
	"github.com/tomz197/kokaton/internal/sound"
)

func main() {
	logger := newLogger(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))
	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

// newLogger builds the root logger. An unknown level keeps info.
func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func run(logger *log.Logger) error {
	tuning, err := loopconfig.LoadTuning(config.GetEnv("KOKATON_TUNING", ""))
	if err != nil {
		return err
	}

	var player sound.Player = sound.Silent{}
	if config.GetEnvBool("KOKATON_SOUND", false) {
		m, err := sound.NewManager(float64(config.GetEnvInt("KOKATON_VOLUME", 100)) / 100)
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			player = m
			defer m.Close()
		}
	}

	// The terminal belongs to the game while it runs, so session logs go
	// to a file when one is configured.
	var sessionLog io.Writer = io.Discard
	if path := config.GetEnv("KOKATON_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		sessionLog = f
	}
	sessionLogger := log.NewWithOptions(sessionLog, log.Options{ReportTimestamp: true})
	sessionLogger.SetLevel(logger.GetLevel())

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	gs := server.NewServer(int64(config.GetEnvInt("KOKATON_SEED", 0)))
	c := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Tuning:   &tuning,
		Logger:   sessionLogger,
		Sound:    player,
	})
	if err := c.Run(); err != nil {
		return err
	}

	_ = term.Restore(fd, oldState)
	if top := gs.TopScores(); len(top) > 0 {
		logger.Info("game finished", "score", top[0].Score)
	}
	return nil
}
