package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/config"
	"github.com/sunitsen/flame/internal/domain/repository"
	"github.com/sunitsen/flame/internal/storage/memory"
)

// Module wires the storage backend: PostgreSQL when a database URI is
// configured, the in-memory store otherwise.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.POSEventRepository { return f.Events() },
		func(f repository.Factory) repository.PromotionRepository { return f.Promotions() },
	),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Warn("no database URI configured, using in-memory storage")
		return memory.New(), nil
	}

	storage, err := New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
	return storage, nil
}
