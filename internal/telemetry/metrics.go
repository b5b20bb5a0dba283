// Package telemetry exposes the kernel's OpenTelemetry instruments. With no
// meter provider installed the global one is a no-op.
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/l1jgo/asteroids/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics records per-frame kernel counters.
type Metrics struct {
	frames      metric.Int64Counter
	tickTime    metric.Float64Histogram
	spawned     metric.Int64Counter
	despawned   metric.Int64Counter
	collisions  metric.Int64Counter
	transitions metric.Int64Counter
	entities    metric.Int64ObservableGauge

	// written by the game loop, read by the collector goroutine
	live atomic.Int64
}

// New creates the instruments on the global meter provider.
func New() (*Metrics, error) {
	return NewWithMeter(meter())
}

// NewWithMeter creates the instruments on m.
func NewWithMeter(m metric.Meter) (*Metrics, error) {
	t := &Metrics{}
	var err error

	if t.frames, err = m.Int64Counter("sim.frames",
		metric.WithDescription("Simulation ticks executed")); err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}
	if t.tickTime, err = m.Float64Histogram("sim.tick.duration",
		metric.WithDescription("Wall time spent in one tick"),
		metric.WithUnit("ms")); err != nil {
		return nil, fmt.Errorf("creating tick histogram: %w", err)
	}
	if t.spawned, err = m.Int64Counter("sim.entities.spawned",
		metric.WithDescription("Entities created at phase barriers")); err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}
	if t.despawned, err = m.Int64Counter("sim.entities.despawned",
		metric.WithDescription("Entities destroyed at phase barriers")); err != nil {
		return nil, fmt.Errorf("creating despawned counter: %w", err)
	}
	if t.collisions, err = m.Int64Counter("sim.collisions",
		metric.WithDescription("Collision notifications consumed by damage")); err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}
	if t.transitions, err = m.Int64Counter("sim.state.transitions",
		metric.WithDescription("Game state transitions applied")); err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}
	if t.entities, err = m.Int64ObservableGauge("sim.entities.live",
		metric.WithDescription("Live entities after the last tick")); err != nil {
		return nil, fmt.Errorf("creating entities gauge: %w", err)
	}
	if _, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(t.entities, t.live.Load())
		return nil
	}, t.entities); err != nil {
		return nil, fmt.Errorf("registering entities callback: %w", err)
	}

	return t, nil
}

// Frame records one finished tick.
func (t *Metrics) Frame(ctx context.Context, took time.Duration, spawned, despawned, collisions, live int) {
	if t == nil {
		return
	}
	t.frames.Add(ctx, 1)
	t.tickTime.Record(ctx, float64(took.Microseconds())/1000)
	if spawned > 0 {
		t.spawned.Add(ctx, int64(spawned))
	}
	if despawned > 0 {
		t.despawned.Add(ctx, int64(despawned))
	}
	if collisions > 0 {
		t.collisions.Add(ctx, int64(collisions))
	}
	t.live.Store(int64(live))
}

// Transition records a game state change.
func (t *Metrics) Transition(ctx context.Context, from, to string) {
	if t == nil {
		return
	}
	t.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// Live returns the entity count last recorded.
func (t *Metrics) Live() int64 {
	if t == nil {
		return 0
	}
	return t.live.Load()
}
