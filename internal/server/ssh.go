// Package server serves tuidock over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/input"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	// Config is shared by every session. Nil loads the user config.
	Config *config.UserConfig
	// Layouts persists one layout per SSH user. Nil disables persistence.
	Layouts *layout.Store
	Logger  *log.Logger
}

// Server runs one docking model per SSH session.
type Server struct {
	cfg      *SSHServerConfig
	log      *log.Logger
	sessions sync.Map // session ID -> *app.Model
}

// DefaultHostKeyPath is where the host key lives unless one is given.
func DefaultHostKeyPath() (string, error) {
	p, err := xdg.DataFile("tuidock/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("resolve host key path: %w", err)
	}
	return p, nil
}

// NewServer prepares a server; it does not listen yet.
func NewServer(cfg *SSHServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, log: logger}
}

// StartSSHServer initializes and runs the SSH server until ctx is done.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	return NewServer(cfg).ListenAndServe(ctx)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	hostKeyPath := s.cfg.KeyPath
	if hostKeyPath == "" {
		p, err := DefaultHostKeyPath()
		if err != nil {
			return err
		}
		hostKeyPath = p
	}

	// Middlewares run last to first; saveMiddleware therefore runs once the
	// program has exited.
	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(s.cfg.Host, s.cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			s.saveMiddleware,
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(s.log),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting SSH server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// teaHandler creates a docking model for each SSH session.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		return nil, nil
	}

	cfg := s.sessionConfig(sess.User())
	app.SetInputHandler(input.HandleInput)
	m := app.New(app.Options{
		Config:  cfg,
		Layouts: s.cfg.Layouts,
		Width:   pty.Window.Width,
		Height:  pty.Window.Height,
		SSH:     true,
	})
	s.sessions.Store(sess.Context().SessionID(), m)
	s.log.Info("session started", "user", sess.User(), "layout", cfg.Layout.Name)

	return m, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}

// sessionConfig copies the shared config and points it at a layout named
// after the user, so users do not overwrite each other's layouts.
func (s *Server) sessionConfig(user string) *config.UserConfig {
	var cfg config.UserConfig
	switch {
	case s.cfg.Config != nil:
		cfg = *s.cfg.Config
	default:
		loaded, err := config.LoadUserConfig()
		if err != nil {
			s.log.Warn("failed to load config for SSH session, using defaults", "err", err)
			loaded = config.DefaultConfig()
		}
		cfg = *loaded
	}
	if user != "" {
		cfg.Layout.Name = "ssh-" + user
	}
	return &cfg
}

func (s *Server) saveMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if v, ok := s.sessions.LoadAndDelete(sess.Context().SessionID()); ok {
			v.(*app.Model).Cleanup()
			s.log.Info("session ended", "user", sess.User())
		}
		next(sess)
	}
}
