package automation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
)

// DefaultBootDelay is how long the logon program gets to start before connecting
const DefaultBootDelay = 3 * time.Second

// Launcher starts the host client
type Launcher interface {
	Launch(ctx context.Context) error
}

// ExecLauncher starts the logon executable as a detached process
type ExecLauncher struct {
	Path string
}

// Launch implements Launcher. The client keeps running after the run ends.
func (l ExecLauncher) Launch(ctx context.Context) error {
	if l.Path == "" {
		return errors.New("logon executable path is not configured")
	}
	cmd := exec.Command(l.Path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.Path, err)
	}
	return cmd.Process.Release()
}

// PasswordSource looks up the host password of a user
type PasswordSource interface {
	Get(user string) (string, error)
}

// SessionOptions identifies the host connection to use
type SessionOptions struct {
	Environment string
	BootDelay   time.Duration
}

// SessionProvider reuses an open session for the environment or starts the
// client and logs in.
type SessionProvider struct {
	connector host.Connector
	launcher  Launcher
	passwords PasswordSource
	registry  *host.Registry
	opts      SessionOptions
	logger    *zap.Logger
}

// NewSessionProvider creates a session provider
func NewSessionProvider(connector host.Connector, launcher Launcher, passwords PasswordSource, registry *host.Registry, opts SessionOptions, logger *zap.Logger) *SessionProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.BootDelay < 0 {
		opts.BootDelay = 0
	}
	return &SessionProvider{
		connector: connector,
		launcher:  launcher,
		passwords: passwords,
		registry:  registry,
		opts:      opts,
		logger:    logger,
	}
}

// Acquire returns a logged-in session, logging in as user when a new
// connection has to be opened. Every failure wraps entity.ErrSessionUnavailable.
func (p *SessionProvider) Acquire(ctx context.Context, user string) (host.Session, error) {
	session, err := p.connector.Attach(ctx, p.opts.Environment)
	if err == nil {
		p.logger.Info("Reusing open host session", zap.String("environment", p.opts.Environment))
		return session, nil
	}
	if !errors.Is(err, host.ErrNoSession) {
		return nil, unavailable("attach", err)
	}

	p.logger.Info("No open host session, starting a new logon",
		zap.String("environment", p.opts.Environment),
		zap.String("user", user))

	if p.launcher == nil {
		return nil, unavailable("launch", errors.New("no launcher configured"))
	}
	if err := p.launcher.Launch(ctx); err != nil {
		return nil, unavailable("launch", err)
	}
	if err := sleep(ctx, p.opts.BootDelay); err != nil {
		return nil, unavailable("launch", err)
	}

	session, err = p.connector.OpenConnection(ctx, p.opts.Environment)
	if err != nil {
		return nil, unavailable("open connection", err)
	}

	if err := p.logon(ctx, session, user); err != nil {
		return nil, unavailable("logon", err)
	}

	p.logger.Info("Host session opened", zap.String("environment", p.opts.Environment))
	return session, nil
}

func (p *SessionProvider) logon(ctx context.Context, session host.Session, user string) error {
	if user == "" {
		return errors.New("no SAP user configured")
	}
	if p.passwords == nil {
		return errors.New("no password source configured")
	}
	password, err := p.passwords.Get(user)
	if err != nil {
		return err
	}

	s := newScreen(ctx, &RunContext{Session: session, Registry: p.registry})
	s.set(host.FieldLogonUser, user)
	s.set(host.FieldLogonPassword, password)
	s.enter()
	return s.err
}

func unavailable(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", entity.ErrSessionUnavailable, step, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
