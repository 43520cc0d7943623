package app

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type App struct {
	runners []Runner
}

func New(runners ...Runner) *App {
	return &App{runners: runners}
}

// Run starts every runner and stops all of them on SIGINT/SIGTERM or on the
// first runner error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

func (a *App) RunContext(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range a.runners {
		g.Go(func() error { return r.Run(gctx) })
	}
	return g.Wait()
}
