package bridge

import (
	"context"
	"net/url"

	"github.com/garyjia/lodging-sap/internal/host"
)

// Session is a host session living inside the bridge process
type Session struct {
	client *Client
	id     string
}

// ID returns the bridge-side session id
func (s *Session) ID() string {
	return s.id
}

func (s *Session) do(ctx context.Context, c call) (string, error) {
	r, err := s.client.post(ctx, "/sessions/"+url.PathEscape(s.id)+"/call", c)
	if err != nil {
		return "", err
	}
	return r.Result, nil
}

// FindByID checks the path exists and returns a handle bound to ctx
func (s *Session) FindByID(ctx context.Context, path string) (host.Element, error) {
	if _, err := s.do(ctx, call{Method: "findById", Path: path}); err != nil {
		return nil, err
	}
	return &Element{ctx: ctx, session: s, path: path}, nil
}

func (s *Session) StartTransaction(ctx context.Context, code string) error {
	_, err := s.do(ctx, call{Method: "startTransaction", Args: []interface{}{code}})
	return err
}

func (s *Session) SendVKey(ctx context.Context, window int, key host.VKey) error {
	_, err := s.do(ctx, call{Method: "sendVKey", Path: windowPath(window), Args: []interface{}{int(key)}})
	return err
}

func (s *Session) StatusText(ctx context.Context) (string, error) {
	return s.do(ctx, call{Method: "text", Path: "wnd[0]/sbar"})
}

// WaitReady blocks until the client is no longer busy
func (s *Session) WaitReady(ctx context.Context) error {
	_, err := s.client.post(ctx, "/sessions/"+url.PathEscape(s.id)+"/ready", nil)
	return err
}

func windowPath(window int) string {
	switch window {
	case host.Popup:
		return "wnd[1]"
	case host.Popup2:
		return "wnd[2]"
	default:
		return "wnd[0]"
	}
}
