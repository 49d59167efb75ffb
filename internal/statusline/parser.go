// Package statusline extracts generated document numbers from the host status bar.
package statusline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// Capture is what a status line carries after a successful save
type Capture struct {
	DocumentNumber int64
	Status         string
}

// Parser turns a raw status text into a Capture
type Parser interface {
	Parse(text string) (Capture, error)
}

// TokenParser splits on whitespace and picks tokens by position.
// StatusToken < 0 means the message carries no status code.
type TokenParser struct {
	NumberToken int
	StatusToken int
}

// Parse implements Parser
func (p TokenParser) Parse(text string) (Capture, error) {
	tokens := strings.Fields(text)
	if p.NumberToken < 0 || p.NumberToken >= len(tokens) {
		return Capture{}, fmt.Errorf("%w: token %d missing in %q", entity.ErrStatusLine, p.NumberToken, text)
	}

	number, err := parseNumber(tokens[p.NumberToken])
	if err != nil {
		return Capture{}, fmt.Errorf("%w: %q: %v", entity.ErrStatusLine, text, err)
	}

	capture := Capture{DocumentNumber: number}
	if p.StatusToken >= 0 {
		if p.StatusToken >= len(tokens) {
			return Capture{}, fmt.Errorf("%w: status token %d missing in %q", entity.ErrStatusLine, p.StatusToken, text)
		}
		capture.Status = tokens[p.StatusToken]
	}
	return capture, nil
}

// SliceParser reads the number from a fixed character window [Start, End)
type SliceParser struct {
	Start int
	End   int
}

// Parse implements Parser
func (p SliceParser) Parse(text string) (Capture, error) {
	if p.Start < 0 || p.End <= p.Start || p.End > len(text) {
		return Capture{}, fmt.Errorf("%w: window [%d:%d] outside %q", entity.ErrStatusLine, p.Start, p.End, text)
	}

	number, err := parseNumber(text[p.Start:p.End])
	if err != nil {
		return Capture{}, fmt.Errorf("%w: %q: %v", entity.ErrStatusLine, text, err)
	}
	return Capture{DocumentNumber: number}, nil
}

func parseNumber(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty document number")
	}
	return strconv.ParseInt(raw, 10, 64)
}
