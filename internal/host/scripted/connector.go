package scripted

import (
	"context"

	"github.com/garyjia/lodging-sap/internal/host"
)

// Connector hands out a single scripted session.
// Until Open is set Attach reports host.ErrNoSession, as if the client had no connection.
// Every successful Attach starts a run, so the session's recording is reset.
type Connector struct {
	Session *Session
	Open    bool

	Opened int
}

func (c *Connector) Attach(ctx context.Context, environment string) (host.Session, error) {
	if !c.Open {
		return nil, host.ErrNoSession
	}
	c.Session.Reset()
	return c.Session, nil
}

func (c *Connector) OpenConnection(ctx context.Context, environment string) (host.Session, error) {
	c.Opened++
	c.Open = true
	return c.Session, nil
}
