package probe

import (
	"context"
	"time"

	"github.com/hamed0406/sitewatch/internal/domain"
)

// DefaultTimeout bounds a single probe when the caller has no preference.
const DefaultTimeout = 5 * time.Second

// Result is the outcome of a single probe.
//
// Fields:
//   - Cause: why the probe failed; CauseNone when a response was received.
//   - StatusCode: HTTP status code when a response was received; 0 otherwise.
//   - Err: the underlying transport error, kept for logs. Never returned to callers.
type Result struct {
	Cause      Cause
	StatusCode int
	Latency    time.Duration
	Err        error
}

// Verdict collapses the result to UP/DOWN. Any HTTP response counts as UP.
func (r Result) Verdict() domain.Verdict {
	return domain.Verdict(r.Cause == CauseNone)
}

// Prober performs one reachability check of target.
type Prober interface {
	Probe(ctx context.Context, target string, timeout time.Duration) Result
}

// State converts the result into the registry entry observed at at.
func (r Result) State(at time.Time) domain.ObservedState {
	return domain.ObservedState{
		Verdict:    r.Verdict(),
		CheckedAt:  at,
		HTTPStatus: r.StatusCode,
	}
}
