// Package monitor implements the on-demand operations used by the HTTP
// layer: probing one URL now and reading every tracked state.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/domain"
	"github.com/hamed0406/sitewatch/internal/metrics"
	"github.com/hamed0406/sitewatch/internal/probe"
	"github.com/hamed0406/sitewatch/internal/repo"
)

// ErrInvalidURL is returned by ProbeNow before any network call is made.
var ErrInvalidURL = errors.New("invalid url")

// Outcome is what ProbeNow reports back to the caller.
type Outcome struct {
	URL     string
	Verdict domain.Verdict
	State   domain.ObservedState
}

type Monitor struct {
	Logger   *zap.Logger
	Registry repo.Registry
	Prober   probe.Prober
	Timeout  time.Duration
	Clock    clockwork.Clock
}

func New(logger *zap.Logger, reg repo.Registry, p probe.Prober, timeout time.Duration) *Monitor {
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	return &Monitor{
		Logger:   logger,
		Registry: reg,
		Prober:   p,
		Timeout:  timeout,
		Clock:    clockwork.NewRealClock(),
	}
}

// ProbeNow probes target synchronously and records the result. Unseen
// targets become tracked by the poll loop from its next pass.
func (m *Monitor) ProbeNow(ctx context.Context, target string) (Outcome, error) {
	if err := ValidateURL(target); err != nil {
		return Outcome{}, err
	}

	res := m.Prober.Probe(ctx, target, m.Timeout)
	st := res.State(m.Clock.Now().UTC())
	m.Registry.Upsert(target, st)

	metrics.ObserveProbe(metrics.SourcePing, st.Verdict.String(), res.Cause.String(), res.Latency)
	metrics.Targets.Set(float64(m.Registry.Len()))

	fields := []zap.Field{
		zap.String("url", target),
		zap.Stringer("verdict", st.Verdict),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", res.Latency),
	}
	if res.Err != nil {
		fields = append(fields, zap.Stringer("cause", res.Cause), zap.Error(res.Err))
	}
	m.Logger.Info("ping_checked", fields...)

	return Outcome{URL: target, Verdict: st.Verdict, State: st}, nil
}

// ReadAll returns a copy of every tracked state. Never nil.
func (m *Monitor) ReadAll(_ context.Context) map[string]domain.ObservedState {
	return m.Registry.Snapshot()
}

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(raw string) error {
	err := validation.Validate(raw,
		validation.Required,
		validation.Length(1, 2048),
		validation.By(httpURL),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return nil
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if u.Hostname() == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}
