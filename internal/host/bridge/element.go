package bridge

import "context"

// Element forwards every operation to the bridge.
// It uses the context of the FindByID call that produced it.
type Element struct {
	ctx     context.Context
	session *Session
	path    string
}

func (e *Element) invoke(method string, args ...interface{}) error {
	_, err := e.session.do(e.ctx, call{Method: method, Path: e.path, Args: args})
	return err
}

func (e *Element) Text() (string, error) {
	return e.session.do(e.ctx, call{Method: "text", Path: e.path})
}

func (e *Element) SetText(value string) error { return e.invoke("setText", value) }
func (e *Element) SetFocus() error            { return e.invoke("setFocus") }
func (e *Element) SetCaret(pos int) error     { return e.invoke("caretPosition", pos) }
func (e *Element) Press() error               { return e.invoke("press") }
func (e *Element) Select() error              { return e.invoke("select") }
func (e *Element) PressEnter() error          { return e.invoke("pressEnter") }

func (e *Element) ModifyCell(row int, column, value string) error {
	return e.invoke("modifyCell", row, column, value)
}

func (e *Element) SetCurrentCell(row int, column string) error {
	return e.invoke("setCurrentCell", row, column)
}

func (e *Element) SetSelectedRows(rows string) error {
	return e.invoke("selectedRows", rows)
}

func (e *Element) PressContextButton(id string) error {
	return e.invoke("pressContextButton", id)
}

func (e *Element) SelectContextMenuItem(id string) error {
	return e.invoke("selectContextMenuItem", id)
}
