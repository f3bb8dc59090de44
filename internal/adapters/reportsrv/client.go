// Package reportsrv implements the HTTP protocol client for the remote
// report server and the interpreter for its JSON responses.
package reportsrv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	portsclients "github.com/retailboard/store_reports_app/internal/core/ports/clients"
)

// DefaultTimeout bounds a report round trip when the caller does not
// configure one. Remote queries regularly run tens of seconds.
const DefaultTimeout = 30 * time.Second

// Client talks to the report server. The query parameters identify the
// gateway's own service account; the tenant identity travels in the envelope
// body. The client performs no retries; retry policy belongs to the caller.
type Client struct {
	baseURL     string
	gatewayUser string
	gatewayPass string
	httpClient  *http.Client
}

// NewClient creates a report server client with the given bounded timeout.
func NewClient(host string, port int, gatewayUser, gatewayPass string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:     fmt.Sprintf("http://%s:%d", host, port),
		gatewayUser: gatewayUser,
		gatewayPass: gatewayPass,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ portsclients.ReportServer = (*Client)(nil)

// Query dispatches a pure read (HTTP GET) and interprets the response.
func (c *Client) Query(ctx context.Context, reportName, tenantID string, env domain.Envelope) (domain.ReportResult, error) {
	raw, err := c.Send(ctx, http.MethodGet, reportName, tenantID, env)
	if err != nil {
		return domain.ReportResult{}, err
	}
	return Parse(raw)
}

// Execute dispatches a mutating call (HTTP POST) and interprets the response.
func (c *Client) Execute(ctx context.Context, reportName, tenantID string, env domain.Envelope) (domain.ReportResult, error) {
	raw, err := c.Send(ctx, http.MethodPost, reportName, tenantID, env)
	if err != nil {
		return domain.ReportResult{}, err
	}
	return Parse(raw)
}

// Send serializes the envelope and dispatches it to
// /report/{name}/?id={tenant}&u={gatewayUser}&p={gatewayPass}. It returns the
// raw response bytes; every failure up to and including a non-200 status wraps
// apperrors.ErrTransport so callers can tell "unreachable" apart from a
// server-side error code.
func (c *Client) Send(ctx context.Context, method, reportName, tenantID string, env domain.Envelope) ([]byte, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	query := url.Values{}
	query.Set("id", tenantID)
	query.Set("u", c.gatewayUser)
	query.Set("p", c.gatewayPass)
	endpoint := fmt.Sprintf("%s/report/%s/?%s", c.baseURL, url.PathEscape(reportName), query.Encode())

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, method, reportName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s: unexpected status %d", apperrors.ErrTransport, method, reportName, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: read body: %v", apperrors.ErrTransport, method, reportName, err)
	}
	return data, nil
}
