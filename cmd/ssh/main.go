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

	"github.com/davrk/errblast/internal/audio"
	"github.com/davrk/errblast/internal/config"
	"github.com/davrk/errblast/internal/draw"
	"github.com/davrk/errblast/internal/game"
	"github.com/davrk/errblast/internal/theme"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/errblast_host_key"
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	spritePath := config.GetEnv("ERRBLAST_SPRITE", "")

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(spritePath),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps pointer input latency down
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down")

	wait := time.Duration(config.GetEnvInt("SSH_SHUTDOWN_TIMEOUT", 5)) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game loop per SSH session. The error code comes
// from the SSH username, so `ssh 500@host` plays the 500 variant.
func gameMiddleware(spritePath string) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t code@host")
				return
			}

			code := sess.User()
			if !knownCode(code) {
				code = "404"
			}

			log.Info("new session",
				"user", sess.User(), "code", code,
				"term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			l := game.NewLoop(bufio.NewReader(sess), sess, game.Options{
				Theme:      theme.FromEnv(code),
				TermSize:   sizeTracker.getSize,
				Cue:        audio.BellCue{W: sess},
				SpritePath: spritePath,
			})
			if err := l.Run(sess.Context()); err != nil {
				log.Error("game error", "user", sess.User(), "err", err)
			}

			log.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// knownCode reports whether code has a built-in theme.
func knownCode(code string) bool {
	for _, c := range theme.Codes() {
		if c == code {
			return true
		}
	}
	return false
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
