package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/kokaton/internal/config"
	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/loop/client"
	loopconfig "github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	playerDrainTimeout = 15 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}
	if err := run(logger); err != nil {
		logger.Fatal("ssh server failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	addr := net.JoinHostPort(host, port)
	logger.Info("ssh config", "addr", addr, "hostKeyPath", hostKeyPath)

	tuning, err := loopconfig.LoadTuning(config.GetEnv("KOKATON_TUNING", ""))
	if err != nil {
		return err
	}

	h := &sessionHandler{
		server: server.NewServer(int64(config.GetEnvInt("KOKATON_SEED", 0))),
		tuning: tuning,
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		ssh.WrapConn(noDelay),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		serveErr <- s.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "players", h.server.Players())
	h.server.Shutdown(playerDrainTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// noDelay sets TCP_NODELAY so key presses reach the game without batching.
func noDelay(_ ssh.Context, conn net.Conn) net.Conn {
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return conn
}

// sessionHandler starts one game client per PTY session.
type sessionHandler struct {
	server *server.Server
	tuning loopconfig.Tuning
	logger *log.Logger
}

func (h *sessionHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.logger.Debug("pty", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		size := newWindowSize(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.set(win.Width, win.Height)
			}
		}()

		tuning := h.tuning
		c := client.NewClient(h.server, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: size.get,
			Username:     sess.User(),
			Tuning:       &tuning,
			Logger:       h.logger,
		})
		if err := c.Run(); err != nil {
			h.logger.Error("game error", "user", sess.User(), "err", err)
		}

		next(sess)
	}
}

// windowSize holds the latest PTY dimensions reported by the SSH client.
type windowSize struct {
	v atomic.Uint64 // width in the high half, height in the low half
}

func newWindowSize(width, height int) *windowSize {
	s := &windowSize{}
	s.set(width, height)
	return s
}

func (s *windowSize) set(width, height int) {
	s.v.Store(uint64(uint32(width))<<32 | uint64(uint32(height)))
}

func (s *windowSize) get() (int, int, error) {
	v := s.v.Load()
	return int(uint32(v >> 32)), int(uint32(v)), nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).get
