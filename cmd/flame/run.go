package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the app lifecycle: start, block until a shutdown signal or an
// internal shutdown request, then stop.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fail("start", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fail("stop", err)
	}
}

func fail(phase string, err error) {
	fmt.Fprintf(os.Stderr, "flame: %s: %v\n", phase, err)
	os.Exit(1)
}
