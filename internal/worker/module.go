package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/adapter/pos"
	"github.com/sunitsen/flame/internal/config"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// Module exposes the delivery queue and dispatcher to the fx graph.
var Module = fx.Options(
	fx.Provide(NewEventQueue),
	fx.Provide(newDispatcher),
)

type dispatcherParams struct {
	fx.In

	Queue    *EventQueue
	Sink     pos.Sink
	Recorder OutcomeRecorder
	Clock    clock.Clock
	Config   *config.Config
	Logger   *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(
		p.Queue,
		p.Sink,
		p.Recorder,
		p.Clock,
		p.Config.MaxRetries,
		p.Config.RetryBaseDelay,
		p.Config.PosDeliveryTimeout,
		p.Config.QueueWorkers,
		p.Logger,
	)
}
