package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/application/service"
	"github.com/garyjia/lodging-sap/internal/automation"
	"github.com/garyjia/lodging-sap/internal/config"
	"github.com/garyjia/lodging-sap/internal/credentials"
	httpapi "github.com/garyjia/lodging-sap/internal/interfaces/http"
	"github.com/garyjia/lodging-sap/internal/repository"
	"github.com/garyjia/lodging-sap/pkg/database"
)

// Options alter how the container talks to the host
type Options struct {
	// DryRun replaces the host client with a scripted session and never saves workbooks
	DryRun bool
}

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *config.Config
	opts   Options
	logger *zap.Logger

	db          *database.DB
	runs        *repository.RunRepository
	credentials *credentials.Store
	sessions    *automation.SessionProvider
	runService  service.RunService

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config:      cfg,
		opts:        opts,
		logger:      logger,
		credentials: credentials.NewStore(cfg.SAP.System),
	}, nil
}

// Start initializes all components:
// 1. Run ledger
// 2. Host surface (locators, connector, session provider)
// 3. Run service with workbook access and notifications
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization", zap.Bool("dry_run", c.opts.DryRun))

	// Step 1: Run ledger
	db, err := ProvideDatabase(c.config.Database, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.db = db
	c.runs = repository.NewRunRepository(db.DB, c.logger)

	// Step 2: Host surface
	registry, err := ProvideRegistry(c.config.LocatorsPath, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load locators: %w", err)
	}
	c.sessions = automation.NewSessionProvider(
		ProvideConnector(c.config.SAP, c.opts.DryRun, c.logger),
		automation.ExecLauncher{Path: c.config.SAP.LogonPath},
		c.credentials,
		registry,
		automation.SessionOptions{
			Environment: c.config.SAP.Environment,
			BootDelay:   c.config.SAP.BootDelay,
		},
		c.logger,
	)

	// Step 3: Run service
	c.runService = service.NewRunService(
		c.runs,
		c.db,
		ProvideWorkbooks(c.opts.DryRun, c.logger),
		c.sessions,
		ProvideNotifier(c.config.Lark, c.logger),
		service.RunOptions{
			Registry:    registry,
			SettleDelay: c.config.Automation.SettleDelay,
			Attachments: ProvideAttachmentChecker(c.config.Automation, c.logger),
			FlowLogger:  c.logger,
		},
		service.NewZapLogger(c.logger),
	)

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close waits for a background run and closes the ledger
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}
	c.logger.Info("Closing container")

	var errs []error
	if c.runService != nil {
		c.runService.Wait()
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)
	return errors.Join(errs...)
}

// Ready returns true when all components are initialized
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// RunService returns the run service; nil before Start
func (c *Container) RunService() service.RunService {
	return c.runService
}

// Credentials returns the password store for the configured system
func (c *Container) Credentials() *credentials.Store {
	return c.credentials
}

// NewServer builds the HTTP control surface
func (c *Container) NewServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.ServerConfig{
		Host:         c.config.Server.Host,
		Port:         c.config.Server.Port,
		ReadTimeout:  c.config.Server.ReadTimeout,
		WriteTimeout: c.config.Server.WriteTimeout,
	}, c.runService, service.NewZapLogger(c.logger))
}

// Logger returns the container's logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration
func (c *Container) Config() *config.Config {
	return c.config
}
