package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// ErrRunNotFound is returned when no run matches the lookup
var ErrRunNotFound = errors.New("run not found")

// RunRepository stores the ledger of automation runs and their row outcomes
type RunRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB, logger *zap.Logger) *RunRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunRepository{
		db:     db,
		logger: logger,
	}
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (r *RunRepository) execer(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts a RUNNING run and sets its ID
func (r *RunRepository) Create(tx *sql.Tx, run *entity.RunSummary) error {
	query := `
		INSERT INTO runs (
			run_id, flow, workbook_path, status, total, started_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.execer(tx).Exec(query,
		run.RunID,
		string(run.Flow),
		run.WorkbookPath,
		run.Status,
		run.Total,
		run.StartedAt.UTC(),
	)
	if err != nil {
		r.logger.Error("Failed to create run", zap.String("run_id", run.RunID), zap.Error(err))
		return fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// Finish stores the final counters and status of a run
func (r *RunRepository) Finish(tx *sql.Tx, run *entity.RunSummary) error {
	query := `
		UPDATE runs
		SET status = ?, total = ?, succeeded = ?, failed = ?, error = ?, finished_at = ?
		WHERE id = ?
	`

	var finishedAt interface{}
	if run.FinishedAt != nil {
		finishedAt = run.FinishedAt.UTC()
	}

	result, err := r.execer(tx).Exec(query,
		run.Status,
		run.Total,
		run.Succeeded,
		run.Failed,
		nullString(run.Error),
		finishedAt,
		run.ID,
	)
	if err != nil {
		r.logger.Error("Failed to finish run", zap.Int64("id", run.ID), zap.Error(err))
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", ErrRunNotFound, run.ID)
	}
	return nil
}

// AddRows stores the row outcomes of a run
func (r *RunRepository) AddRows(tx *sql.Tx, runID int64, outcomes []entity.RowOutcome) error {
	query := `
		INSERT INTO run_rows (
			run_id, row_index, sheet_row, invoice, status, document_number, error
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	ex := r.execer(tx)
	for _, o := range outcomes {
		var number interface{}
		if o.DocumentNumber != 0 {
			number = o.DocumentNumber
		}
		if _, err := ex.Exec(query,
			runID,
			o.RowIndex,
			o.SheetRow,
			o.Invoice,
			o.Status,
			number,
			nullString(o.Error),
		); err != nil {
			r.logger.Error("Failed to add run row",
				zap.Int64("run", runID),
				zap.Int("row_index", o.RowIndex),
				zap.Error(err))
			return fmt.Errorf("failed to add run row: %w", err)
		}
	}
	return nil
}

// GetByRunID retrieves a run with its row outcomes
func (r *RunRepository) GetByRunID(runID string) (*entity.RunSummary, error) {
	query := `
		SELECT id, run_id, flow, workbook_path, status, total, succeeded, failed,
			error, started_at, finished_at
		FROM runs
		WHERE run_id = ?
	`

	run, err := scanRun(r.db.QueryRow(query, runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := r.rows(run.ID)
	if err != nil {
		return nil, err
	}
	run.Rows = rows
	return run, nil
}

// List returns the most recent runs first, without row outcomes
func (r *RunRepository) List(limit int) ([]*entity.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, run_id, flow, workbook_path, status, total, succeeded, failed,
			error, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *RunRepository) rows(id int64) ([]entity.RowOutcome, error) {
	query := `
		SELECT row_index, sheet_row, invoice, status, document_number, error
		FROM run_rows
		WHERE run_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run rows: %w", err)
	}
	defer rows.Close()

	var outcomes []entity.RowOutcome
	for rows.Next() {
		var (
			o       entity.RowOutcome
			invoice sql.NullString
			number  sql.NullInt64
			errText sql.NullString
		)
		if err := rows.Scan(&o.RowIndex, &o.SheetRow, &invoice, &o.Status, &number, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		o.Invoice = invoice.String
		o.DocumentNumber = number.Int64
		o.Error = errText.String
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*entity.RunSummary, error) {
	var (
		run        entity.RunSummary
		flow       string
		errText    sql.NullString
		finishedAt sql.NullTime
	)
	if err := s.Scan(
		&run.ID,
		&run.RunID,
		&flow,
		&run.WorkbookPath,
		&run.Status,
		&run.Total,
		&run.Succeeded,
		&run.Failed,
		&errText,
		&run.StartedAt,
		&finishedAt,
	); err != nil {
		return nil, err
	}

	run.Flow = entity.Flow(flow)
	run.Error = errText.String
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
