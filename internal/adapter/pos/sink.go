package pos

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sunitsen/flame/internal/pkg/clock"

	"github.com/sunitsen/flame/internal/domain/model"
)

// Sink is the external webhook endpoint queued events are delivered to.
// Deliver returns nil on successful delivery; any error counts as a failed
// attempt and is subject to the retry budget.
type Sink interface {
	Deliver(ctx context.Context, event *model.POSEvent) error
}

// SimulatedSink models an unreliable webhook endpoint: injected latency and
// a configurable failure rate (5% by default).
type SimulatedSink struct {
	clock       clock.Clock
	failureRate float64
	latency     time.Duration

	randMu sync.Mutex
	rand   *rand.Rand
}

// SinkOption tweaks simulation parameters.
type SinkOption func(*SimulatedSink)

// WithSinkFailureRate overrides the delivery failure probability.
func WithSinkFailureRate(rate float64) SinkOption {
	return func(s *SimulatedSink) { s.failureRate = rate }
}

// WithSinkLatency overrides the simulated delivery delay.
func WithSinkLatency(d time.Duration) SinkOption {
	return func(s *SimulatedSink) { s.latency = d }
}

// WithSinkRand injects a seeded random source.
func WithSinkRand(r *rand.Rand) SinkOption {
	return func(s *SimulatedSink) { s.rand = r }
}

// NewSimulatedSink constructs the simulated webhook sink.
func NewSimulatedSink(clk clock.Clock, opts ...SinkOption) *SimulatedSink {
	s := &SimulatedSink{
		clock:       clk,
		failureRate: 0.05,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver simulates pushing the event to the webhook endpoint.
func (s *SimulatedSink) Deliver(ctx context.Context, _ *model.POSEvent) error {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.latency):
		}
	}

	s.randMu.Lock()
	roll := s.rand.Float64()
	s.randMu.Unlock()
	if roll < s.failureRate {
		return ErrWebhookUnavailable
	}
	return nil
}
