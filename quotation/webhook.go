package quotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// DefaultWebhookTimeout bounds a webhook call when no timeout is configured.
const DefaultWebhookTimeout = 5 * time.Second

// ErrWebhookStatus signals a non-2xx webhook answer.
var ErrWebhookStatus = errors.New("quotation: webhook returned non-success status")

// Doer is the subset of *fasthttp.Client used by WebhookNotifier.
type Doer interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// WebhookNotifier posts accepted requests as JSON to a fixed URL.
type WebhookNotifier struct {
	url     string
	timeout time.Duration
	client  Doer
}

// NewWebhookNotifier builds a notifier for url. A zero timeout selects
// DefaultWebhookTimeout.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}
	return &WebhookNotifier{
		url:     url,
		timeout: timeout,
		client:  &fasthttp.Client{Name: "sumaq-quotation"},
	}
}

// WithClient replaces the HTTP client.
func (w *WebhookNotifier) WithClient(c Doer) *WebhookNotifier {
	w.client = c
	return w
}

// Notify sends n once. The context deadline, when earlier, shortens the
// configured timeout.
func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("quotation: encode notification: %w", err)
	}

	timeout := w.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return fmt.Errorf("quotation: notify: %w", context.DeadlineExceeded)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(w.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Request-ID", n.RequestID)
	req.SetBody(body)

	if err := w.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("quotation: notify: %w", err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("%w: %d", ErrWebhookStatus, code)
	}
	return nil
}
