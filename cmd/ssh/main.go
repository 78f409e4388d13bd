package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/braindots/internal/audio"
	"github.com/tomz197/braindots/internal/config"
	"github.com/tomz197/braindots/internal/draw"
	"github.com/tomz197/braindots/internal/loop/client"
	lconfig "github.com/tomz197/braindots/internal/loop/config"
	"github.com/tomz197/braindots/internal/loop/server"
	"github.com/tomz197/braindots/internal/store"
)

// Shared by all SSH sessions.
var (
	gameServer *server.Server
	scores     store.Scores
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Could not load config", "error", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn("Failed to get working directory", "error", workErr)
	}
	log.Info("SSH config", "host", cfg.SSH.Host, "port", cfg.SSH.Port, "hostKeyPath", cfg.SSH.HostKeyPath, "workingDir", workingDir)

	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			log.Fatal("Could not open score store", "path", cfg.Store.Path, "error", err)
		}
		defer db.Close()
		scores = db
	} else {
		scores = store.NewMemory()
	}

	gameServer = server.NewServer(log.Default().WithPrefix("server"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("Could not create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "host", cfg.SSH.Host, "port", cfg.SSH.Port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			done <- nil
		}
	}()

	<-done
	log.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	gameServer.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		username := sess.User()
		if len(username) > lconfig.MaxUsernameLength {
			username = username[:lconfig.MaxUsernameLength]
		}
		logger := log.Default().With("user", username, "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := client.NewClient(gameServer, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     username,
			Scores:       scores,
			Sound:        audio.Bell{W: sess},
			Logger:       logger,
			Context:      sess.Context(),
			IdleTimeout:  true,
		})
		if err := c.Run(); err != nil {
			logger.Error("Game error", "error", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
