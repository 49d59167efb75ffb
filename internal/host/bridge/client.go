// Package bridge drives the ERP client through a scripting bridge process
// that runs next to it and accepts JSON calls over HTTP.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/host"
)

// HTTPClient is the subset of *http.Client the bridge needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one bridge endpoint
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a bridge client. A nil httpClient uses a 30s timeout client.
func NewClient(baseURL string, httpClient HTTPClient, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// call is the request body for element and session operations
type call struct {
	Method string        `json:"method"`
	Path   string        `json:"path,omitempty"`
	Args   []interface{} `json:"args,omitempty"`
}

type reply struct {
	OK        bool   `json:"ok"`
	Result    string `json:"result,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// reply codes understood by the client
const (
	codeNotFound  = "not_found"
	codeNoSession = "no_session"
)

func (c *Client) post(ctx context.Context, endpoint string, body interface{}) (*reply, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode bridge request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge request %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read bridge response: %w", err)
	}

	var r reply
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("bridge %s returned status %d: %s", endpoint, resp.StatusCode, string(data))
		}
	}

	switch {
	case r.Code == codeNotFound:
		return nil, fmt.Errorf("%w: %s", host.ErrNotFound, r.Error)
	case r.Code == codeNoSession:
		return nil, host.ErrNoSession
	case resp.StatusCode != http.StatusOK || !r.OK:
		return nil, fmt.Errorf("bridge %s returned status %d: %s", endpoint, resp.StatusCode, r.Error)
	}
	return &r, nil
}

// Attach implements host.Connector
func (c *Client) Attach(ctx context.Context, environment string) (host.Session, error) {
	return c.session(ctx, "/environments/"+url.PathEscape(environment)+"/attach")
}

// OpenConnection implements host.Connector
func (c *Client) OpenConnection(ctx context.Context, environment string) (host.Session, error) {
	return c.session(ctx, "/environments/"+url.PathEscape(environment)+"/open")
}

func (c *Client) session(ctx context.Context, endpoint string) (host.Session, error) {
	r, err := c.post(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if r.SessionID == "" {
		return nil, fmt.Errorf("bridge %s returned no session id", endpoint)
	}
	c.logger.Info("Bridge session acquired", zap.String("session_id", r.SessionID))
	return &Session{client: c, id: r.SessionID}, nil
}
