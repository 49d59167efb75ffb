package automation

import (
	"context"
	"fmt"

	"github.com/garyjia/lodging-sap/internal/host"
)

// screen drives one sequence of host actions. The first failure is kept and
// every later call becomes a no-op, so a screen script reads top to bottom
// and is checked once with err().
type screen struct {
	ctx context.Context
	rc  *RunContext
	err error
}

func newScreen(ctx context.Context, rc *RunContext) *screen {
	return &screen{ctx: ctx, rc: rc}
}

func (s *screen) failed() bool {
	return s.err != nil
}

func (s *screen) element(f host.Field) host.Element {
	if s.err != nil {
		return nil
	}
	el, err := s.rc.Registry.Resolve(s.ctx, s.rc.Session, f)
	if err != nil {
		s.err = err
		return nil
	}
	return el
}

func (s *screen) on(f host.Field, op string, fn func(host.Element) error) {
	el := s.element(f)
	if el == nil {
		return
	}
	if err := fn(el); err != nil {
		s.err = fmt.Errorf("%s %s: %w", op, f, err)
	}
}

func (s *screen) set(f host.Field, value string) {
	s.on(f, "set", func(el host.Element) error { return el.SetText(value) })
}

func (s *screen) press(f host.Field) {
	s.on(f, "press", func(el host.Element) error { return el.Press() })
}

func (s *screen) focus(f host.Field) {
	s.on(f, "focus", func(el host.Element) error { return el.SetFocus() })
}

func (s *screen) choose(f host.Field) {
	s.on(f, "select", func(el host.Element) error { return el.Select() })
}

// focusStart puts the cursor at the beginning of a field, which search help needs
func (s *screen) focusStart(f host.Field) {
	s.on(f, "caret", func(el host.Element) error {
		if err := el.SetCaret(0); err != nil {
			return err
		}
		return el.SetFocus()
	})
}

func (s *screen) key(window int, k host.VKey) {
	if s.err != nil {
		return
	}
	if err := s.rc.Session.SendVKey(s.ctx, window, k); err != nil {
		s.err = fmt.Errorf("send key %d to window %d: %w", k, window, err)
	}
}

func (s *screen) enter() {
	s.key(host.MainWindow, host.VKeyEnter)
}

func (s *screen) transaction(code string) {
	if s.err != nil {
		return
	}
	if err := s.rc.Session.StartTransaction(s.ctx, code); err != nil {
		s.err = fmt.Errorf("start transaction %s: %w", code, err)
	}
}

// command types a code into the command field, e.g. "/NME21N"
func (s *screen) command(code string) {
	s.set(host.FieldOkCode, code)
	s.enter()
}

func (s *screen) settle() {
	if s.err != nil {
		return
	}
	if err := host.Settle(s.ctx, s.rc.Session, s.rc.SettleDelay); err != nil {
		s.err = fmt.Errorf("wait for host: %w", err)
	}
}

func (s *screen) status() string {
	if s.err != nil {
		return ""
	}
	text, err := s.rc.Session.StatusText(s.ctx)
	if err != nil {
		s.err = fmt.Errorf("read status bar: %w", err)
		return ""
	}
	return text
}
