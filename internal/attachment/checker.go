// Package attachment checks the PDF files uploaded to host documents.
package attachment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var (
	// ErrMissing is returned when the file does not exist
	ErrMissing = errors.New("attachment file not found")

	// ErrUnreadable is returned when the file is not a PDF with at least one page
	ErrUnreadable = errors.New("attachment is not a readable PDF")
)

// Checker verifies attachment files before they are sent to the host.
// The host accepts any file, so an empty or truncated scan would only be noticed later.
type Checker struct {
	logger *zap.Logger
}

// NewChecker creates a PDF checker
func NewChecker(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{logger: logger}
}

// Check returns nil if path is a PDF that opens and has pages
func (c *Checker) Check(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrMissing, path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMissing, path)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return fmt.Errorf("%w: unsupported file type %s", ErrUnreadable, ext)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages < 1 {
		return fmt.Errorf("%w: %s has no pages", ErrUnreadable, path)
	}

	c.logger.Debug("Attachment checked",
		zap.String("path", path),
		zap.Int("pages", pages),
		zap.Int64("size", info.Size()))
	return nil
}
