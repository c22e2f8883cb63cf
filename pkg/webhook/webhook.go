// Package webhook publishes analysis reports to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ccollicutt/notemap/pkg/config"
	"github.com/ccollicutt/notemap/pkg/output"
)

const (
	// UserAgent identifies webhook requests.
	UserAgent = "notemap-webhook"

	// RunIDHeader carries the report's run id.
	RunIDHeader = "X-NoteMap-Run-ID"

	maxResponseBytes = 1 << 20
)

// Client sends analysis reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // bearer token, optional
	Timeout time.Duration // config.DefaultWebhookTimeout if zero
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was delivered with a 2xx status.
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts a report as JSON to a webhook endpoint.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fail(fmt.Errorf("marshaling report: %w", err))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultWebhookTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(RunIDHeader, report.Metadata.RunID)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return fail(fmt.Errorf("reading response: %w", err))
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(body)
	resp.Duration = time.Since(start)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return resp
}

// ShouldFire reports whether a webhook with the given trigger fires for report.
func ShouldFire(trigger config.WebhookTrigger, report *output.Report) bool {
	switch trigger {
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnUncategorized:
		return report.HasUncategorized()
	default:
		return true
	}
}

// Dispatcher delivers a report to a set of configured webhooks.
type Dispatcher struct {
	client *Client
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(client *Client, logger *zap.Logger) *Dispatcher {
	if client == nil {
		client = NewClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{client: client, logger: logger}
}

// Dispatch sends report to every webhook whose trigger fires, in order.
// Failures are logged and returned in the responses; they never abort the
// remaining deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, report *output.Report, hooks []config.WebhookConfig) map[string]*Response {
	results := make(map[string]*Response)

	for _, wh := range hooks {
		if !ShouldFire(wh.Trigger, report) {
			continue
		}

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		resp := d.client.Send(ctx, report, SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})
		results[name] = resp

		if resp.Success() {
			d.logger.Info("webhook sent",
				zap.String("webhook", name),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", resp.Duration))
		} else {
			d.logger.Warn("webhook failed",
				zap.String("webhook", name),
				zap.Error(resp.Error))
		}
	}

	return results
}
