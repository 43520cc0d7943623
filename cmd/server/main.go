package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/admin"
	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/metrics"
	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/store"
	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/transport/tcp"
	"github.com/dayanaadylkhanova/sessionpow/internal/app"
	"github.com/dayanaadylkhanova/sessionpow/internal/service"
	"github.com/dayanaadylkhanova/sessionpow/pkg/config"
	"github.com/dayanaadylkhanova/sessionpow/pkg/logger"
)

type sessionStore interface {
	service.SessionStore
	Close(ctx context.Context) error
}

func main() {
	cfg, err := config.Parse()
	log := logger.NewJSON("sessionpow-server", logger.LevelFromEnv(cfg.LogLevel))
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownWait)
		defer cancel()
		_ = st.Close(ctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return err
	}

	svc := service.NewSessionService(log, service.SessionConfig{
		Difficulty:     cfg.PoWDifficulty,
		MaxProofLength: cfg.PoWMaxProofLength,
		ChallengeTTL:   cfg.PoWTTL,
		VerifyAttempts: cfg.VerifyAttempts,
	}, st, rec)

	srv := tcp.NewServer(log, tcp.Options{
		Addr:         cfg.ListenAddr,
		IdleTimeout:  cfg.IdleTimeout,
		ShutdownWait: cfg.ShutdownWait,
		RateLimit:    rate.Limit(cfg.RateLimit),
		RateBurst:    cfg.RateBurst,
	}, svc)

	runners := []app.Runner{srv}
	if cfg.AdminAddr != "" {
		runners = append(runners, admin.NewServer(log, cfg.AdminAddr, cfg.ShutdownWait, admin.NewRouter(reg)))
	}

	log.Info("starting",
		"difficulty", cfg.PoWDifficulty,
		"max_proof_length", cfg.PoWMaxProofLength,
		"ttl", cfg.PoWTTL.String(),
		"postgres", cfg.DatabaseURL != "",
	)
	return app.New(runners...).Run()
}

func openStore(cfg config.Config, log *slog.Logger) (sessionStore, error) {
	if cfg.DatabaseURL == "" {
		log.Info("using in-memory session store")
		return store.NewMemory(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close(ctx)
		return nil, err
	}
	return pg, nil
}
