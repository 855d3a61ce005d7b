package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/observability"
	"github.com/couchcryptid/weather-panel/internal/sink"
)

// Renderer produces one complete device image per call.
type Renderer interface {
	Render(ctx context.Context) (*image.Gray, error)
}

// Publisher delivers encoded frames to a display sink.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, f domain.Frame) error
}

// Fallback builds the image shown in place of a failed render.
type Fallback func(err error) *image.Gray

// Options tune the render loop. Zero values take the defaults.
type Options struct {
	Interval   time.Duration // between successful passes; default 10m
	MinBackoff time.Duration // first retry delay after a failed pass; default 5s
	Clock      clockwork.Clock
	// Fallback, when set, is published for failures that happen before the
	// first successful pass. Later failures keep the last good frame.
	Fallback Fallback
}

// Pipeline runs render passes on an interval and publishes the results.
type Pipeline struct {
	renderer   Renderer
	publishers []Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	interval   time.Duration
	minBackoff time.Duration
	fallback   Fallback
	ready      atomic.Bool
}

// New creates a Pipeline with the given renderer, sinks and observability.
func New(r Renderer, publishers []Publisher, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Minute
	}
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = 5 * time.Second
	}
	if opts.MinBackoff > opts.Interval {
		opts.MinBackoff = opts.Interval
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		renderer:   r,
		publishers: publishers,
		logger:     logger,
		metrics:    metrics,
		clock:      opts.Clock,
		interval:   opts.Interval,
		minBackoff: opts.MinBackoff,
		fallback:   opts.Fallback,
	}
}

// CheckReadiness returns nil once a render pass has succeeded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no render pass has succeeded yet")
	}
	return nil
}

// Run renders immediately and then once per interval until the context is
// cancelled. A failed pass is retried with exponential backoff, starting at
// MinBackoff and capped at the interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("render loop started", "interval", p.interval)
	p.metrics.RendererRunning.Set(1)
	defer p.metrics.RendererRunning.Set(0)

	backoff := p.minBackoff
	for {
		wait := p.interval
		if _, err := p.RenderOnce(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("render loop stopping", "reason", ctx.Err())
				return nil
			}
			wait = backoff
			backoff = nextBackoff(backoff, p.interval)
		} else {
			backoff = p.minBackoff
		}

		if !p.sleep(ctx, wait) {
			p.logger.Info("render loop stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// RenderOnce runs one pass, encodes the image and hands it to every
// publisher. Publisher failures are logged and counted but do not fail the
// pass.
func (p *Pipeline) RenderOnce(ctx context.Context) (domain.Frame, error) {
	id := uuid.NewString()
	start := p.clock.Now()
	logger := p.logger.With("render_id", id)

	img, err := p.renderer.Render(ctx)
	if err != nil {
		outcome := Outcome(err)
		p.metrics.RendersTotal.WithLabelValues(outcome).Inc()
		logger.Error("render failed", "error", err, "outcome", outcome)
		if p.fallback != nil && !p.ready.Load() {
			p.publishFallback(ctx, id, start, err, logger)
		}
		return domain.Frame{}, err
	}

	frame, err := p.encode(id, start, img, "")
	if err != nil {
		p.metrics.RendersTotal.WithLabelValues("error").Inc()
		logger.Error("encode failed", "error", err)
		return domain.Frame{}, err
	}
	p.publish(ctx, frame, logger)

	elapsed := p.clock.Since(start)
	p.metrics.RendersTotal.WithLabelValues("success").Inc()
	p.metrics.RenderDuration.Observe(elapsed.Seconds())
	p.metrics.LastSuccess.Set(float64(frame.RenderedAt.Unix()))
	p.ready.Store(true)
	logger.Info("render complete", "duration", elapsed, "bytes", len(frame.PNG))
	return frame, nil
}

func (p *Pipeline) publishFallback(ctx context.Context, id string, at time.Time, cause error, logger *slog.Logger) {
	frame, err := p.encode(id, at, p.fallback(cause), cause.Error())
	if err != nil {
		logger.Error("encode fallback failed", "error", err)
		return
	}
	p.publish(ctx, frame, logger)
}

func (p *Pipeline) encode(id string, at time.Time, img *image.Gray, failure string) (domain.Frame, error) {
	start := p.clock.Now()
	var buf bytes.Buffer
	if err := sink.PNG(&buf, img); err != nil {
		return domain.Frame{}, err
	}
	p.metrics.StageDuration.WithLabelValues("encode").Observe(p.clock.Since(start).Seconds())

	return domain.Frame{
		ID:         id,
		RenderedAt: at,
		Width:      img.Rect.Dx(),
		Height:     img.Rect.Dy(),
		PNG:        buf.Bytes(),
		Err:        failure,
	}, nil
}

func (p *Pipeline) publish(ctx context.Context, f domain.Frame, logger *slog.Logger) {
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, f); err != nil {
			p.metrics.PublishErrors.WithLabelValues(pub.Name()).Inc()
			logger.Error("publish failed", "sink", pub.Name(), "error", err)
		}
	}
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

// Outcome names the failure kind of a render error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrFetchTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrFetch):
		return "fetch"
	case errors.Is(err, domain.ErrDecode):
		return "decode"
	case errors.Is(err, domain.ErrDimensionMismatch):
		return "dimension"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	default:
		return "error"
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
