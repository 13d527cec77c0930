package probe

import (
	"context"
	"net/http"
	"time"
)

type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{Client: &http.Client{}}
}

// Probe issues a single GET to target. The timeout covers connect, request
// and response headers. The body is never read: the verdict is settled once
// the headers arrive.
func (h *HTTPProber) Probe(ctx context.Context, target string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Cause: CauseInvalidRequest, Err: err}
	}

	resp, err := h.Client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return Result{Cause: classify(err), Latency: latency, Err: err}
	}
	resp.Body.Close()

	return Result{StatusCode: resp.StatusCode, Latency: latency}
}
