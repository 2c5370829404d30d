// Package webhook delivers logsift error reports to HTTP receivers such as
// chat relays and incident tools.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ccollicutt/logsift/pkg/output"
)

// DefaultTimeout bounds a single report delivery when SendOptions.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Headers set on every delivery so receivers can route a report without
// decoding its body.
const (
	RunIDHeader      = "X-Logsift-Run-ID"
	ErrorCountHeader = "X-Logsift-Error-Count"
)

// maxResponseBody caps how much of a receiver's reply is kept.
const maxResponseBody = 1024 * 1024

// Client delivers error reports. The zero value is not usable; call NewClient.
type Client struct {
	httpClient *http.Client
}

// NewClient wraps hc for report delivery. A nil hc gets a plain http.Client,
// with per-delivery deadlines coming from SendOptions.Timeout.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{httpClient: hc}
}

// SendOptions names the receiver of one report.
type SendOptions struct {
	URL     string
	Token   string        // sent as "Authorization: Bearer <token>" when set
	Timeout time.Duration // DefaultTimeout when zero or negative
}

// Response records how a receiver handled a report.
// Error is set for transport failures and for 4xx/5xx replies alike.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success reports whether the receiver accepted the report with a 2xx reply.
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts report as JSON to opts.URL.
// Failures are reported in the Response rather than returned.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	defer func() { resp.Duration = time.Since(start) }()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := newReportRequest(ctx, report, opts)
	if err != nil {
		resp.Error = err
		return resp
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		resp.Error = fmt.Errorf("delivering report: %w", err)
		return resp
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		resp.Error = fmt.Errorf("reading receiver reply: %w", err)
		return resp
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(body)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("receiver rejected report with status %d", resp.StatusCode)
	}

	return resp
}

func newReportRequest(ctx context.Context, report *output.Report, opts SendOptions) (*http.Request, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", opts.URL, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "logsift-webhook")
	req.Header.Set(ErrorCountHeader, strconv.Itoa(report.Summary.ErrorsFound))
	if report.Metadata.RunID != "" {
		req.Header.Set(RunIDHeader, report.Metadata.RunID)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	return req, nil
}
