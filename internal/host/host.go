// Package host defines the scripting surface of the ERP client and the
// registry that maps logical fields to element paths.
package host

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Session.FindByID when no element has the path
	ErrNotFound = errors.New("host: element not found")

	// ErrNoSession is returned by Connector.Attach when no session is open for the environment
	ErrNoSession = errors.New("host: no open session")
)

// VKey is a virtual key code sent to a window
type VKey int

const (
	VKeyEnter VKey = 0
	VKeyF4    VKey = 4 // search help
)

// Window indexes: 0 is the main window, 1 and 2 are stacked pop-ups
const (
	MainWindow = 0
	Popup      = 1
	Popup2     = 2
)

// Element is a control on a host screen.
// Grid methods only apply to grid and table controls.
type Element interface {
	Text() (string, error)
	SetText(value string) error
	SetFocus() error
	SetCaret(pos int) error
	Press() error
	Select() error

	ModifyCell(row int, column, value string) error
	SetCurrentCell(row int, column string) error
	SetSelectedRows(rows string) error
	PressEnter() error

	PressContextButton(id string) error
	SelectContextMenuItem(id string) error
}

// Session is one logged-in host session
type Session interface {
	FindByID(ctx context.Context, path string) (Element, error)
	StartTransaction(ctx context.Context, code string) error
	SendVKey(ctx context.Context, window int, key VKey) error
	StatusText(ctx context.Context) (string, error)
}

// ReadyWaiter is implemented by sessions that can report when the host is idle
type ReadyWaiter interface {
	WaitReady(ctx context.Context) error
}

// Connector finds or opens sessions for a named environment
type Connector interface {
	// Attach returns an existing session or ErrNoSession
	Attach(ctx context.Context, environment string) (Session, error)

	// OpenConnection opens the environment's connection after the client is running
	// and returns the session sitting on its logon screen
	OpenConnection(ctx context.Context, environment string) (Session, error)
}
