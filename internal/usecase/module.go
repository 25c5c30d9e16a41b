package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/adapter/pos"
	"github.com/sunitsen/flame/internal/config"
	"github.com/sunitsen/flame/internal/domain/repository"
	"github.com/sunitsen/flame/internal/pkg/clock"
	"github.com/sunitsen/flame/internal/worker"
)

// Module provides core business use cases to the fx container. The sync
// engine doubles as the adapter's event publisher and the dispatcher's
// outcome recorder.
var Module = fx.Options(
	fx.Provide(
		NewSyncEngine,
		NewPromotionUseCase,
		NewAnalyticsUseCase,
		newPaymentProcessor,
		newOrderUseCase,
	),
	fx.Provide(
		func(e *SyncEngine) pos.EventPublisher { return e },
		func(e *SyncEngine) worker.OutcomeRecorder { return e },
		func(d *worker.Dispatcher) RetryAborter { return d },
	),
)

type paymentParams struct {
	fx.In

	Clock  clock.Clock
	Config *config.Config
	Logger *slog.Logger
}

func newPaymentProcessor(p paymentParams) *PaymentProcessor {
	return NewPaymentProcessor(p.Clock, p.Logger,
		WithDeclineRate(p.Config.PaymentDeclineRate),
		WithPaymentLatency(p.Config.PaymentLatency),
	)
}

type orderParams struct {
	fx.In

	Orders     repository.OrderRepository
	Promotions *PromotionUseCase
	Payments   *PaymentProcessor
	Adapter    pos.Adapter
	Aborter    RetryAborter
	Clock      clock.Clock
	Config     *config.Config
	Logger     *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(
		p.Orders,
		p.Promotions,
		p.Payments,
		p.Adapter,
		p.Aborter,
		p.Clock,
		p.Logger,
		p.Config.TaxRate,
		p.Config.DeliveryFee,
	)
}
