package scripted

import (
	"fmt"
	"strconv"
)

// Element is a recorded control on the scripted session
type Element struct {
	session *Session
	path    string
}

func (e *Element) Text() (string, error) {
	if err := e.session.record(e.path, "read", "", ""); err != nil {
		return "", err
	}
	return e.session.Value(e.path), nil
}

func (e *Element) SetText(value string) error {
	if err := e.session.record(e.path, "set", value, ""); err != nil {
		return err
	}
	e.session.mu.Lock()
	e.session.values[e.path] = value
	e.session.mu.Unlock()
	return nil
}

func (e *Element) SetFocus() error {
	return e.session.record(e.path, "focus", "", "")
}

func (e *Element) SetCaret(pos int) error {
	return e.session.record(e.path, "caret", strconv.Itoa(pos), "")
}

func (e *Element) Press() error {
	return e.session.record(e.path, "press", "", "")
}

func (e *Element) Select() error {
	return e.session.record(e.path, "select", "", "")
}

func (e *Element) ModifyCell(row int, column, value string) error {
	if err := e.session.record(e.path, "cell", fmt.Sprintf("%d,%s,%s", row, column, value), ""); err != nil {
		return err
	}
	e.session.mu.Lock()
	e.session.cells[cellKey(e.path, row, column)] = value
	e.session.mu.Unlock()
	return nil
}

func (e *Element) SetCurrentCell(row int, column string) error {
	return e.session.record(e.path, "current_cell", fmt.Sprintf("%d,%s", row, column), "")
}

func (e *Element) SetSelectedRows(rows string) error {
	return e.session.record(e.path, "select_rows", rows, "")
}

func (e *Element) PressEnter() error {
	return e.session.record(e.path, "enter", "", "")
}

func (e *Element) PressContextButton(id string) error {
	return e.session.record(e.path, "context_button", id, "")
}

func (e *Element) SelectContextMenuItem(id string) error {
	return e.session.record(e.path, "context_item", id, "")
}
