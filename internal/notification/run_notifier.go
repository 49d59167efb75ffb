// Package notification reports finished runs to a Lark chat.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// maxListedFailures bounds how many failing rows are spelled out in a message
const maxListedFailures = 10

// TextSender delivers a plain text message
type TextSender interface {
	SendText(ctx context.Context, receiveIDType, receiveID, text string) error
}

// RunNotifier sends a run summary to one chat
type RunNotifier struct {
	sender        TextSender
	receiveIDType string
	receiveID     string
	logger        *zap.Logger
}

// NewRunNotifier creates a notifier that posts to receiveID
func NewRunNotifier(sender TextSender, receiveIDType, receiveID string, logger *zap.Logger) *RunNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunNotifier{
		sender:        sender,
		receiveIDType: receiveIDType,
		receiveID:     receiveID,
		logger:        logger,
	}
}

// NotifyRun implements the run service notifier
func (n *RunNotifier) NotifyRun(ctx context.Context, run *entity.RunSummary) error {
	text := FormatRun(run)
	if err := n.sender.SendText(ctx, n.receiveIDType, n.receiveID, text); err != nil {
		return fmt.Errorf("failed to notify run %s: %w", run.RunID, err)
	}
	n.logger.Debug("Run notification sent", zap.String("run_id", run.RunID))
	return nil
}

// FormatRun renders the summary shown to operators
func FormatRun(run *entity.RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lodging run %s: %s\n", run.Flow, run.Status)
	fmt.Fprintf(&b, "Workbook: %s\n", run.WorkbookPath)
	fmt.Fprintf(&b, "Rows: %d total, %d succeeded, %d failed\n", run.Total, run.Succeeded, run.Failed)

	var numbers []string
	for _, row := range run.Rows {
		if row.Status == entity.RowStatusSucceeded && row.DocumentNumber != 0 {
			numbers = append(numbers, fmt.Sprintf("%d", row.DocumentNumber))
		}
	}
	if len(numbers) > 0 {
		fmt.Fprintf(&b, "Documents: %s\n", strings.Join(uniq(numbers), ", "))
	}

	listed := 0
	for _, row := range run.Rows {
		if row.Status == entity.RowStatusSucceeded {
			continue
		}
		if listed == maxListedFailures {
			fmt.Fprintf(&b, "... and %d more\n", run.Failed-listed)
			break
		}
		fmt.Fprintf(&b, "Row %d (NF %s) %s: %s\n", row.SheetRow, row.Invoice, row.Status, row.Error)
		listed++
	}

	if run.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", run.Error)
	}
	if run.FinishedAt != nil {
		fmt.Fprintf(&b, "Duration: %s", run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}

	return strings.TrimRight(b.String(), "\n")
}

// uniq keeps the first occurrence of each value; a requisition shares one number across rows
func uniq(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
