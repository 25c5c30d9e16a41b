package di

import (
	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/adapter/pos"
	"github.com/sunitsen/flame/internal/app"
	"github.com/sunitsen/flame/internal/config"
	"github.com/sunitsen/flame/internal/logger"
	"github.com/sunitsen/flame/internal/pkg/auth"
	"github.com/sunitsen/flame/internal/server/http/handlers"
	"github.com/sunitsen/flame/internal/server/http/middleware"
	"github.com/sunitsen/flame/internal/server/http/router"
	"github.com/sunitsen/flame/internal/storage/postgres"
	"github.com/sunitsen/flame/internal/usecase"
	"github.com/sunitsen/flame/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		pos.Module,
		worker.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
			func(m *auth.TokenManager) middleware.TokenParser { return m },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
