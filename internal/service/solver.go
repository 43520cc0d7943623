package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// SolverDeps are the capabilities a HashcashSolver is built with.
type SolverDeps struct {
	// Clock measures solve duration. Required.
	Clock PerformanceTracker
	// NewWorker, when set, moves the proof search off the calling goroutine.
	NewWorker WorkerFactory
	// OnSolveCompleted receives exactly one record per Solve call.
	OnSolveCompleted func(entity.SolveAnalytics)
}

// HashcashSolver turns a hashcash challenge into a solution string.
// It never retries; the caller owns retry policy.
type HashcashSolver struct {
	log              *slog.Logger
	clock            PerformanceTracker
	newWorker        WorkerFactory
	onSolveCompleted func(entity.SolveAnalytics)
}

func NewHashcashSolver(log *slog.Logger, deps SolverDeps) *HashcashSolver {
	if deps.Clock == nil {
		panic("service: HashcashSolver requires a Clock")
	}
	return &HashcashSolver{
		log:              log.With("component", "hashcash_solver"),
		clock:            deps.Clock,
		newWorker:        deps.NewWorker,
		onSolveCompleted: deps.OnSolveCompleted,
	}
}

// Solve searches [0, max_proof_length) and returns "subject:nonce:counter".
// Errors are *SolveError values, reported to analytics before being returned.
func (s *HashcashSolver) Solve(ctx context.Context, ch entity.Challenge) (solution string, err error) {
	start := s.clock.Now()
	usedWorker := s.newWorker != nil
	var (
		difficulty int
		iterations *int64
	)
	defer func() {
		s.report(start, difficulty, usedWorker, iterations, err)
	}()

	challenge, err := hashcashFromChallenge(ch)
	if err != nil {
		return "", err
	}
	difficulty = challenge.Difficulty

	proof, err := s.findProof(ctx, entity.FindProofParams{
		Challenge:  challenge,
		RangeStart: 0,
		RangeSize:  challenge.MaxProofLength,
	})
	if err != nil {
		return "", err
	}
	if proof == nil {
		return "", NewNoProofError(fmt.Sprintf("no valid proof found within %d attempts", challenge.MaxProofLength))
	}

	iterations = &proof.Attempts
	return Solution(challenge.Subject, challenge.Nonce, proof.Counter), nil
}

func (s *HashcashSolver) findProof(ctx context.Context, p entity.FindProofParams) (*entity.Proof, error) {
	if s.newWorker == nil {
		return FindProof(ctx, p)
	}

	w, err := s.newWorker()
	if err != nil {
		return nil, NewWorkerBusyError("failed to start worker", err)
	}
	if w == nil {
		return nil, NewWorkerBusyError("worker factory returned no worker", nil)
	}
	defer w.Terminate()

	return w.FindProof(ctx, p)
}

func (s *HashcashSolver) report(start time.Duration, difficulty int, usedWorker bool, iterations *int64, err error) {
	a := entity.SolveAnalytics{
		DurationMs:     float64(s.clock.Now()-start) / float64(time.Millisecond),
		Success:        err == nil,
		Difficulty:     difficulty,
		IterationCount: iterations,
		UsedWorker:     usedWorker,
	}
	if err != nil {
		a.ErrorType = string(ClassifyError(err))
		a.ErrorMessage = err.Error()

		attrs := []any{"error_type", a.ErrorType, "err", err, "duration_ms", a.DurationMs}
		var se *SolveError
		if errors.As(err, &se) && len(se.Issues) > 0 {
			attrs = append(attrs, "issues", se.Issues)
		}
		s.log.Warn("hashcash solve failed", attrs...)
	} else {
		s.log.Debug("hashcash solved",
			"difficulty", difficulty,
			"iterations", *iterations,
			"duration_ms", a.DurationMs,
			"used_worker", usedWorker,
		)
	}

	if s.onSolveCompleted != nil {
		s.onSolveCompleted(a)
	}
}

// hashcashFromChallenge prefers the typed variant and falls back to the
// legacy JSON string in Extra["challengeData"].
func hashcashFromChallenge(ch entity.Challenge) (entity.HashcashChallenge, error) {
	if ch.Data != nil && ch.Data.Case == entity.CaseHashcash {
		if ch.Data.Hashcash == nil {
			return entity.HashcashChallenge{}, NewValidationError("hashcash challenge data is empty", nil)
		}
		return ValidateHashcashChallenge(*ch.Data.Hashcash)
	}

	raw := ch.Extra[entity.ExtraChallengeData]
	if raw == "" {
		return entity.HashcashChallenge{}, NewValidationError("missing hashcash challenge data", nil)
	}
	return ParseHashcashChallenge(raw)
}
