package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/sunitsen/flame/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run(ctx, newApp(ctx))
}

// newApp assembles the fx graph. The signal-aware context is provided so
// long-running components can observe shutdown directly.
func newApp(ctx context.Context) *fx.App {
	return fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)
}
