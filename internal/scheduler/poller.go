package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/sitewatch/internal/metrics"
	"github.com/hamed0406/sitewatch/internal/probe"
	"github.com/hamed0406/sitewatch/internal/repo"
)

const (
	DefaultInterval    = 60 * time.Second
	DefaultConcurrency = 8
)

// Poller re-probes every registered target. It never adds targets; new
// ones arrive through probe-now and are picked up on the next pass.
type Poller struct {
	Logger      *zap.Logger
	Registry    repo.Registry
	Prober      probe.Prober
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int
	Clock       clockwork.Clock
}

func NewPoller(
	logger *zap.Logger,
	reg repo.Registry,
	p probe.Prober,
	interval time.Duration,
	timeout time.Duration,
	concurrency int,
) *Poller {
	if concurrency < 1 {
		concurrency = 1
	}
	if interval < 0 {
		interval = 0
	}
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	return &Poller{
		Logger:      logger,
		Registry:    reg,
		Prober:      p,
		Interval:    interval,
		Timeout:     timeout,
		Concurrency: concurrency,
		Clock:       clockwork.NewRealClock(),
	}
}

// Run does an immediate pass, then waits Interval after each completed pass
// before starting the next. Stops when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.Interval == 0 {
		p.Logger.Info("poller_disabled")
		return
	}
	p.Logger.Info("poller_started",
		zap.Duration("interval", p.Interval),
		zap.Int("concurrency", p.Concurrency),
	)

	for {
		p.RunOnce(ctx)

		select {
		case <-ctx.Done():
			p.Logger.Info("poller_stopped")
			return
		case <-p.Clock.After(p.Interval):
		}
	}
}

// RunOnce probes every key present at call time and returns once all
// probes have been written back.
func (p *Poller) RunOnce(ctx context.Context) {
	keys := p.Registry.Keys()
	metrics.Targets.Set(float64(len(keys)))
	if len(keys) == 0 {
		return
	}
	start := p.Clock.Now()

	var g errgroup.Group
	g.SetLimit(p.Concurrency)
	for _, url := range keys {
		g.Go(func() error {
			p.check(ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	elapsed := p.Clock.Since(start)
	metrics.PollPassDuration.Observe(elapsed.Seconds())
	p.Logger.Info("poll_pass_complete",
		zap.Int("targets", len(keys)),
		zap.Duration("elapsed", elapsed),
	)
}

func (p *Poller) check(ctx context.Context, url string) {
	res := p.Prober.Probe(ctx, url, p.Timeout)
	if ctx.Err() != nil {
		// cancelled mid-pass: the result says nothing about the target
		return
	}
	st := res.State(p.Clock.Now().UTC())
	p.Registry.Upsert(url, st)

	metrics.ObserveProbe(metrics.SourcePoll, st.Verdict.String(), res.Cause.String(), res.Latency)

	fields := []zap.Field{
		zap.String("url", url),
		zap.Stringer("verdict", st.Verdict),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", res.Latency),
	}
	if res.Err != nil {
		fields = append(fields, zap.Stringer("cause", res.Cause), zap.Error(res.Err))
	}
	p.Logger.Debug("poll_checked", fields...)
}
