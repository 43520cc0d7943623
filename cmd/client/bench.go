package main

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
	"github.com/dayanaadylkhanova/sessionpow/internal/service"
)

type benchStats struct {
	mu         sync.Mutex
	solves     int
	failures   int
	totalMs    float64
	iterations int64
}

func (s *benchStats) record(a entity.SolveAnalytics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !a.Success {
		s.failures++
		return
	}
	s.solves++
	s.totalMs += a.DurationMs
	if a.IterationCount != nil {
		s.iterations += *a.IterationCount
	}
}

func newBenchCmd(opts *options) *cobra.Command {
	var (
		difficulty     int
		count          int
		concurrency    int
		maxProofLength int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve locally generated challenges and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()

			onSolve, stop, err := opts.startMetrics(ctx)
			if err != nil {
				return err
			}
			defer stop()

			stats := &benchStats{}
			solver := opts.solver(chain(stats.record, onSolve))
			pow := service.NewHashcash(maxProofLength)

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(max(concurrency, 1))
			for i := 0; i < count; i++ {
				g.Go(func() error {
					hc, err := pow.NewChallenge(difficulty)
					if err != nil {
						return err
					}
					sol, err := solver.Solve(gctx, entity.Challenge{
						Type: entity.ChallengeTypeHashcash,
						Data: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: &hc},
					})
					if err != nil {
						if service.ClassifyError(err) == service.ErrorTypeNoProof {
							return nil
						}
						return err
					}
					return pow.Verify(hc, sol)
				})
			}
			if err := g.Wait(); err != nil {
				return fmt.Errorf("bench: %w", err)
			}

			stats.mu.Lock()
			defer stats.mu.Unlock()
			printf(cmd, "solved %d/%d (difficulty %d, worker %t)\n", stats.solves, count, difficulty, opts.cfg.UseWorker)
			if stats.solves > 0 {
				printf(cmd, "mean %.2fms, mean %d hashes\n",
					stats.totalMs/float64(stats.solves), stats.iterations/int64(stats.solves))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&difficulty, "difficulty", 2, "leading zero bytes required")
	cmd.Flags().IntVar(&count, "count", 20, "challenges to solve")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "parallel solves")
	cmd.Flags().Int64Var(&maxProofLength, "max-proof-length", entity.DefaultMaxProofLength, "counter search space")
	return cmd
}
