package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/admin"
	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/metrics"
	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
	"github.com/dayanaadylkhanova/sessionpow/internal/service"
	"github.com/dayanaadylkhanova/sessionpow/pkg/config"
	"github.com/dayanaadylkhanova/sessionpow/pkg/logger"
)

type options struct {
	cfg         config.ClientConfig
	metricsAddr string
	log         *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.ParseClient()}

	root := &cobra.Command{
		Use:           "sessionpow",
		Short:         "Session client that solves proof-of-work challenges",
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.log = logger.NewJSON("sessionpow-client", logger.LevelFromEnv(opts.cfg.LogLevel))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfg.ServerAddr, "server", opts.cfg.ServerAddr, "session server address")
	pf.DurationVar(&opts.cfg.Timeout, "timeout", opts.cfg.Timeout, "overall command timeout")
	pf.BoolVar(&opts.cfg.UseWorker, "worker", opts.cfg.UseWorker, "run proof search on a dedicated worker goroutine")
	pf.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "debug, info, warn or error")
	pf.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve solve metrics on this address while the command runs")

	root.AddCommand(
		newSessionCmd(opts),
		newSignoutCmd(opts),
		newSolveCmd(opts),
		newBenchCmd(opts),
	)
	return root
}

// solver builds the challenge router used by every command.
func (o *options) solver(onSolve func(entity.SolveAnalytics)) *service.ChallengeSolverService {
	deps := service.SolverDeps{
		Clock:            service.NewMonotonicClock(),
		OnSolveCompleted: onSolve,
	}
	if o.cfg.UseWorker {
		deps.NewWorker = service.GoroutineWorkerFactory
	}

	svc := service.NewChallengeSolverService()
	svc.Register(entity.ChallengeTypeHashcash, service.NewHashcashSolver(o.log, deps))
	svc.Register(entity.ChallengeTypeGitHub, service.GitHubSolver{})
	return svc
}

// startMetrics serves a metrics endpoint when --metrics-addr is set. The
// returned stop func shuts it down.
func (o *options) startMetrics(ctx context.Context) (func(entity.SolveAnalytics), func(), error) {
	if o.metricsAddr == "" {
		return nil, func() {}, nil
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	srv := admin.NewServer(o.log, o.metricsAddr, time.Second, admin.NewRouter(reg))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			o.log.Warn("metrics server failed", "err", err)
		}
	}()

	return rec.OnSolveCompleted, func() { cancel(); wg.Wait() }, nil
}

func (o *options) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if o.cfg.Timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), o.cfg.Timeout)
}

func chain(fns ...func(entity.SolveAnalytics)) func(entity.SolveAnalytics) {
	return func(a entity.SolveAnalytics) {
		for _, fn := range fns {
			if fn != nil {
				fn(a)
			}
		}
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
