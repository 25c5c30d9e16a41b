package pos

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/config"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// Module exposes the POS adapter and event sink to the fx graph.
var Module = fx.Options(
	fx.Provide(func() clock.Clock { return clock.System{} }),
	fx.Provide(newAdapter),
	fx.Provide(newSink),
)

type adapterParams struct {
	fx.In

	Publisher EventPublisher
	Clock     clock.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

func newAdapter(p adapterParams) Adapter {
	return NewMockAdapter(p.Publisher, p.Clock, p.Logger,
		WithFailureRate(p.Config.PosSendFailureRate),
		WithLatency(p.Config.PosLatency),
	)
}

type sinkParams struct {
	fx.In

	Config    *config.Config
	Clock     clock.Clock
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newSink(p sinkParams) (Sink, error) {
	switch p.Config.PosSinkKind {
	case config.SinkSimulated:
		return NewSimulatedSink(p.Clock,
			WithSinkFailureRate(p.Config.WebhookFailureRate),
			WithSinkLatency(p.Config.WebhookLatency),
		), nil
	case config.SinkWebhook:
		return NewWebhookSink(p.Config.PosWebhookURL, p.Config.PosDeliveryTimeout, p.Logger)
	case config.SinkAMQP:
		sink, err := NewAMQPSink(p.Config.AMQPURL, p.Config.AMQPExchange)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.StopHook(sink.Close))
		return sink, nil
	default:
		return nil, fmt.Errorf("unknown POS sink kind: %q", p.Config.PosSinkKind)
	}
}
