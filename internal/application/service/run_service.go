package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/application/port"
	"github.com/garyjia/lodging-sap/internal/automation"
	"github.com/garyjia/lodging-sap/internal/credentials"
	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
)

// ErrBusy is returned when a run is requested while another one is in progress
var ErrBusy = errors.New("another run is in progress")

// RunRequest describes one batch run over a workbook
type RunRequest struct {
	Flow            entity.Flow `json:"-"`
	WorkbookPath    string      `json:"workbook_path"`
	InvoiceDir      string      `json:"invoice_dir"`
	ServiceSheetDir string      `json:"service_sheet_dir"`
	// User overrides the SAP user stored next to the workbook
	User string `json:"user"`
}

// Validate checks the request before any resource is touched
func (r RunRequest) Validate() error {
	if !r.Flow.IsValid() {
		return fmt.Errorf("%w: unknown flow %q", entity.ErrValidation, r.Flow)
	}
	if r.WorkbookPath == "" {
		return fmt.Errorf("%w: workbook path is required", entity.ErrValidation)
	}
	return nil
}

// RunService executes the automation flows one at a time and keeps the run ledger
type RunService interface {
	// Run executes the request and returns once it has finished
	Run(ctx context.Context, req RunRequest) (*entity.RunSummary, error)
	// Start executes the request in the background and returns the RUNNING entry
	Start(ctx context.Context, req RunRequest) (*entity.RunSummary, error)
	// Wait blocks until background runs have finished
	Wait()
	Get(runID string) (*entity.RunSummary, error)
	List(limit int) ([]*entity.RunSummary, error)
}

// RunOptions carries the host-facing settings shared by every run
type RunOptions struct {
	Registry    *host.Registry
	SettleDelay time.Duration
	Attachments automation.AttachmentChecker
	Clock       func() time.Time
	// FlowLogger receives the per-field logs of the flows
	FlowLogger *zap.Logger
	// LoadUser resolves the SAP user for a workbook; defaults to the user file
	LoadUser func(workbookPath string) (string, error)
}

type runServiceImpl struct {
	runs      port.RunRepository
	txManager port.TransactionManager
	workbooks port.WorkbookOpener
	sessions  port.SessionAcquirer
	notifier  port.RunNotifier
	opts      RunOptions
	logger    Logger

	busy sync.Mutex
	wg   sync.WaitGroup
}

// NewRunService creates a new RunService. notifier may be nil.
func NewRunService(
	runs port.RunRepository,
	txManager port.TransactionManager,
	workbooks port.WorkbookOpener,
	sessions port.SessionAcquirer,
	notifier port.RunNotifier,
	opts RunOptions,
	logger Logger,
) RunService {
	if opts.Registry == nil {
		opts.Registry = host.NewRegistry()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.FlowLogger == nil {
		opts.FlowLogger = zap.NewNop()
	}
	if opts.LoadUser == nil {
		opts.LoadUser = credentials.LoadUser
	}
	return &runServiceImpl{
		runs:      runs,
		txManager: txManager,
		workbooks: workbooks,
		sessions:  sessions,
		notifier:  notifier,
		opts:      opts,
		logger:    logger,
	}
}

// Run implements RunService
func (s *runServiceImpl) Run(ctx context.Context, req RunRequest) (*entity.RunSummary, error) {
	run, err := s.begin(req)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, run, req)
}

// Start implements RunService
func (s *runServiceImpl) Start(ctx context.Context, req RunRequest) (*entity.RunSummary, error) {
	run, err := s.begin(req)
	if err != nil {
		return nil, err
	}
	snapshot := *run

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// the ledger already holds the outcome
		_, _ = s.execute(ctx, run, req)
	}()

	return &snapshot, nil
}

// Wait implements RunService
func (s *runServiceImpl) Wait() {
	s.wg.Wait()
}

// Get implements RunService
func (s *runServiceImpl) Get(runID string) (*entity.RunSummary, error) {
	return s.runs.GetByRunID(runID)
}

// List implements RunService
func (s *runServiceImpl) List(limit int) ([]*entity.RunSummary, error) {
	return s.runs.List(limit)
}

// begin takes the single run slot and records the run as RUNNING
func (s *runServiceImpl) begin(req RunRequest) (*entity.RunSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !s.busy.TryLock() {
		return nil, ErrBusy
	}

	run := &entity.RunSummary{
		RunID:        uuid.New().String(),
		Flow:         req.Flow,
		WorkbookPath: req.WorkbookPath,
		Status:       entity.RunStatusRunning,
		StartedAt:    s.opts.Clock(),
	}
	if err := s.runs.Create(nil, run); err != nil {
		s.busy.Unlock()
		return nil, fmt.Errorf("create run: %w", err)
	}

	s.logger.Info("Run started", "run_id", run.RunID, "flow", run.Flow.String(), "workbook", run.WorkbookPath)
	return run, nil
}

// execute performs the run and always releases the run slot
func (s *runServiceImpl) execute(ctx context.Context, run *entity.RunSummary, req RunRequest) (*entity.RunSummary, error) {
	defer s.busy.Unlock()

	runErr := s.perform(ctx, run, req)
	s.finish(ctx, run, runErr)
	return run, runErr
}

func (s *runServiceImpl) perform(ctx context.Context, run *entity.RunSummary, req RunRequest) error {
	flow, err := automation.ForFlow(req.Flow)
	if err != nil {
		return err
	}

	wb, err := s.workbooks.Open(req.WorkbookPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	rows, err := wb.Rows()
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	run.Total = len(rows)

	user := req.User
	if user == "" {
		if user, err = s.opts.LoadUser(req.WorkbookPath); err != nil {
			return fmt.Errorf("load SAP user: %w", err)
		}
	}

	session, err := s.sessions.Acquire(ctx, user)
	if err != nil {
		return err
	}

	rc := &automation.RunContext{
		Session:         session,
		Registry:        s.opts.Registry,
		Store:           wb,
		Logger:          s.opts.FlowLogger.With(zap.String("run_id", run.RunID)),
		Clock:           s.opts.Clock,
		InvoiceDir:      req.InvoiceDir,
		ServiceSheetDir: req.ServiceSheetDir,
		SettleDelay:     s.opts.SettleDelay,
		Attachments:     s.opts.Attachments,
	}

	summary, err := flow(ctx, rc, rows)
	if summary != nil {
		run.Total = summary.Total
		run.Succeeded = summary.Succeeded
		run.Failed = summary.Failed
		run.Rows = summary.Rows
	}
	return err
}

// finish stores the outcome in the ledger and notifies the operators.
// Ledger and notification errors are logged; the run error is what callers see.
func (s *runServiceImpl) finish(ctx context.Context, run *entity.RunSummary, runErr error) {
	finishedAt := s.opts.Clock()
	run.FinishedAt = &finishedAt
	run.Status = entity.RunStatusCompleted
	if runErr != nil {
		run.Status = entity.RunStatusFailed
		run.Error = runErr.Error()
	}

	err := s.txManager.WithTransaction(func(tx *sql.Tx) error {
		if err := s.runs.AddRows(tx, run.ID, run.Rows); err != nil {
			return err
		}
		return s.runs.Finish(tx, run)
	})
	if err != nil {
		s.logger.Error("Failed to record run outcome", "run_id", run.RunID, "error", err)
	}

	if runErr != nil {
		s.logger.Error("Run failed",
			"run_id", run.RunID,
			"flow", run.Flow.String(),
			"succeeded", run.Succeeded,
			"failed", run.Failed,
			"error", runErr,
		)
	} else {
		s.logger.Info("Run completed",
			"run_id", run.RunID,
			"flow", run.Flow.String(),
			"total", run.Total,
			"succeeded", run.Succeeded,
			"failed", run.Failed,
		)
	}

	if s.notifier == nil {
		return
	}
	// a cancelled run is still reported
	if err := s.notifier.NotifyRun(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Error("Failed to send run notification", "run_id", run.RunID, "error", err)
	}
}
