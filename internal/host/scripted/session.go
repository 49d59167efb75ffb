// Package scripted is an in-memory host session. It records every action,
// replays queued status bar messages and is used for dry runs and tests.
package scripted

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/garyjia/lodging-sap/internal/host"
)

// Action is one recorded interaction
type Action struct {
	Path string
	Op   string
	Arg  string
}

func (a Action) String() string {
	if a.Arg == "" {
		return a.Op + " " + a.Path
	}
	return fmt.Sprintf("%s %s = %s", a.Op, a.Path, a.Arg)
}

// Session records actions instead of driving a real client.
// Every path exists unless marked missing.
type Session struct {
	mu       sync.Mutex
	missing  map[string]bool
	failures map[string]error
	values   map[string]string
	cells    map[string]string
	statuses []string
	fallback func() string
	actions  []Action
}

// NewSession creates an empty scripted session
func NewSession() *Session {
	return &Session{
		missing:  make(map[string]bool),
		failures: make(map[string]error),
		values:   make(map[string]string),
		cells:    make(map[string]string),
	}
}

// Missing makes FindByID report host.ErrNotFound for the paths
func (s *Session) Missing(paths ...string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		s.missing[p] = true
	}
	return s
}

// FailOn makes every action on the path (or a transaction code) return err
func (s *Session) FailOn(pathOrCode string, err error) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[pathOrCode] = err
	return s
}

// QueueStatus appends status bar messages returned by successive StatusText calls
func (s *Session) QueueStatus(texts ...string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, texts...)
	return s
}

// Fallback supplies the status text once the queue is empty
func (s *Session) Fallback(fn func() string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = fn
	return s
}

// Actions returns a copy of every recorded action
func (s *Session) Actions() []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Action(nil), s.actions...)
}

// Reset clears the recorded actions, texts and cells. Queued statuses,
// failures and missing paths stay configured.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = nil
	s.values = make(map[string]string)
	s.cells = make(map[string]string)
}

// ActionsOn returns the recorded actions with the given op
func (s *Session) ActionsOn(op string) []Action {
	var out []Action
	for _, a := range s.Actions() {
		if a.Op == op {
			out = append(out, a)
		}
	}
	return out
}

// Value returns the last text set on a path
func (s *Session) Value(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[path]
}

// Cell returns the last value written to a grid cell
func (s *Session) Cell(path string, row int, column string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[cellKey(path, row, column)]
}

// Transactions lists started transaction codes in order
func (s *Session) Transactions() []string {
	var codes []string
	for _, a := range s.ActionsOn("transaction") {
		codes = append(codes, a.Arg)
	}
	return codes
}

func (s *Session) FindByID(ctx context.Context, path string) (host.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing[path] {
		return nil, fmt.Errorf("%w: %s", host.ErrNotFound, path)
	}
	return &Element{session: s, path: path}, nil
}

func (s *Session) StartTransaction(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.record("", "transaction", code, code)
}

func (s *Session) SendVKey(ctx context.Context, window int, key host.VKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.record(fmt.Sprintf("wnd[%d]", window), "vkey", fmt.Sprint(int(key)), "")
}

// StatusText pops the next queued message; an empty queue reads as a blank status bar
func (s *Session) StatusText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, Action{Path: "wnd[0]/sbar", Op: "status"})
	if len(s.statuses) == 0 {
		if s.fallback != nil {
			return s.fallback(), nil
		}
		return "", nil
	}
	text := s.statuses[0]
	s.statuses = s.statuses[1:]
	return text, nil
}

func (s *Session) record(path, op, arg, failKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if failKey == "" {
		failKey = path
	}
	if err, ok := s.failures[failKey]; ok {
		return err
	}
	s.actions = append(s.actions, Action{Path: path, Op: op, Arg: arg})
	return nil
}

func cellKey(path string, row int, column string) string {
	return fmt.Sprintf("%s[%d,%s]", path, row, strings.ToUpper(column))
}
