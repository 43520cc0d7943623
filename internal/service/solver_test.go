package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

func loggerSilent() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// fakeClock advances by step on every Now call.
type fakeClock struct {
	now  time.Duration
	step time.Duration
}

func (c *fakeClock) Now() time.Duration {
	t := c.now
	c.now += c.step
	return t
}

type analyticsSink struct{ got []entity.SolveAnalytics }

func (s *analyticsSink) record(a entity.SolveAnalytics) { s.got = append(s.got, a) }

func hashcashChallenge(ch entity.HashcashChallenge) entity.Challenge {
	return entity.Challenge{
		ID:   "ch-1",
		Type: entity.ChallengeTypeHashcash,
		Data: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: &ch},
	}
}

func TestSolve_TypedChallenge_MainGoroutine(t *testing.T) {
	t.Parallel()

	sink := &analyticsSink{}
	s := NewHashcashSolver(loggerSilent(), SolverDeps{
		Clock:            &fakeClock{step: 25 * time.Millisecond},
		OnSolveCompleted: sink.record,
	})

	sol, err := s.Solve(context.Background(), hashcashChallenge(testChallenge(0)))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol != "test:abc123:0" {
		t.Fatalf("solution = %q; want %q", sol, "test:abc123:0")
	}

	if len(sink.got) != 1 {
		t.Fatalf("analytics emitted %d times; want 1", len(sink.got))
	}
	a := sink.got[0]
	if !a.Success || a.UsedWorker || a.Difficulty != 0 || a.ErrorType != "" {
		t.Fatalf("unexpected analytics: %+v", a)
	}
	if a.DurationMs != 25 {
		t.Fatalf("duration = %vms; want 25ms from the fake clock", a.DurationMs)
	}
	if a.IterationCount == nil || *a.IterationCount != 1 {
		t.Fatalf("iteration count = %v; want 1", a.IterationCount)
	}
}

func TestSolve_LegacyExtraChallenge(t *testing.T) {
	t.Parallel()

	raw, _ := json.Marshal(testChallenge(1))
	s := NewHashcashSolver(loggerSilent(), SolverDeps{Clock: &fakeClock{}})

	sol, err := s.Solve(context.Background(), entity.Challenge{
		Type:  entity.ChallengeTypeHashcash,
		Extra: map[string]string{entity.ExtraChallengeData: string(raw)},
	})
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if err := NewHashcash(entity.DefaultMaxProofLength).Verify(testChallenge(1), sol); err != nil {
		t.Fatalf("solution %q does not verify: %v", sol, err)
	}
}

func TestSolve_NoProof(t *testing.T) {
	t.Parallel()

	sink := &analyticsSink{}
	s := NewHashcashSolver(loggerSilent(), SolverDeps{Clock: &fakeClock{}, OnSolveCompleted: sink.record})

	ch := testChallenge(8)
	ch.MaxProofLength = 1
	_, err := s.Solve(context.Background(), hashcashChallenge(ch))
	if !errors.Is(err, ErrNoProof) || ClassifyError(err) != ErrorTypeNoProof {
		t.Fatalf("Solve() err = %v; want no_proof", err)
	}

	if len(sink.got) != 1 {
		t.Fatalf("analytics emitted %d times; want 1", len(sink.got))
	}
	a := sink.got[0]
	if a.Success || a.ErrorType != string(ErrorTypeNoProof) || a.Difficulty != 8 || a.ErrorMessage == "" {
		t.Fatalf("unexpected analytics: %+v", a)
	}
}

func TestSolve_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ch   entity.Challenge
	}{
		{"no_data", entity.Challenge{Type: entity.ChallengeTypeHashcash}},
		{"empty_typed_variant", entity.Challenge{Data: &entity.ChallengeData{Case: entity.CaseHashcash}}},
		{"bad_legacy_json", entity.Challenge{Extra: map[string]string{entity.ExtraChallengeData: "{not json"}}},
		{"negative_difficulty", hashcashChallenge(func() entity.HashcashChallenge { c := testChallenge(0); c.Difficulty = -1; return c }())},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &analyticsSink{}
			s := NewHashcashSolver(loggerSilent(), SolverDeps{Clock: &fakeClock{}, OnSolveCompleted: sink.record})

			_, err := s.Solve(context.Background(), tc.ch)
			if ClassifyError(err) != ErrorTypeValidation {
				t.Fatalf("Solve() err = %v; want validation", err)
			}
			if len(sink.got) != 1 || sink.got[0].Success || sink.got[0].ErrorType != string(ErrorTypeValidation) {
				t.Fatalf("analytics = %+v; want one validation failure", sink.got)
			}
		})
	}
}

func TestSolve_WorkerTerminatedOnSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := NewMockWorkerChannel(ctrl)
	ch := entity.HashcashChallenge{Difficulty: 1, Subject: "S", Algorithm: "sha256", Nonce: "N", MaxProofLength: 500}

	gomock.InOrder(
		w.EXPECT().
			FindProof(gomock.Any(), entity.FindProofParams{Challenge: ch, RangeStart: 0, RangeSize: 500}).
			Return(&entity.Proof{Counter: 42, Attempts: 43}, nil),
		w.EXPECT().Terminate().Times(1),
	)

	sink := &analyticsSink{}
	s := NewHashcashSolver(loggerSilent(), SolverDeps{
		Clock:            &fakeClock{},
		NewWorker:        func() (WorkerChannel, error) { return w, nil },
		OnSolveCompleted: sink.record,
	})

	sol, err := s.Solve(context.Background(), hashcashChallenge(ch))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol != "S:N:42" {
		t.Fatalf("solution = %q; want %q", sol, "S:N:42")
	}
	if len(sink.got) != 1 || !sink.got[0].Success || !sink.got[0].UsedWorker || sink.got[0].Difficulty != 1 {
		t.Fatalf("analytics = %+v", sink.got)
	}
	if it := sink.got[0].IterationCount; it == nil || *it != 43 {
		t.Fatalf("iteration count = %v; want 43", it)
	}
}

func TestSolve_WorkerTerminatedOnFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := NewMockWorkerChannel(ctrl)
	w.EXPECT().FindProof(gomock.Any(), gomock.Any()).Return(nil, NewWorkerBusyError("worker busy", nil))
	w.EXPECT().Terminate().Times(1)

	sink := &analyticsSink{}
	s := NewHashcashSolver(loggerSilent(), SolverDeps{
		Clock:            &fakeClock{},
		NewWorker:        func() (WorkerChannel, error) { return w, nil },
		OnSolveCompleted: sink.record,
	})

	_, err := s.Solve(context.Background(), hashcashChallenge(testChallenge(1)))
	if !errors.Is(err, ErrWorkerBusy) {
		t.Fatalf("Solve() err = %v; want worker busy", err)
	}
	if len(sink.got) != 1 || sink.got[0].Success || !sink.got[0].UsedWorker || sink.got[0].ErrorType != string(ErrorTypeWorkerBusy) {
		t.Fatalf("analytics = %+v", sink.got)
	}
}

func TestSolve_WorkerNoProof(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := NewMockWorkerChannel(ctrl)
	w.EXPECT().FindProof(gomock.Any(), gomock.Any()).Return(nil, nil)
	w.EXPECT().Terminate().Times(1)

	s := NewHashcashSolver(loggerSilent(), SolverDeps{
		Clock:     &fakeClock{},
		NewWorker: func() (WorkerChannel, error) { return w, nil },
	})

	if _, err := s.Solve(context.Background(), hashcashChallenge(testChallenge(1))); !errors.Is(err, ErrNoProof) {
		t.Fatalf("Solve() err = %v; want no proof", err)
	}
}

func TestSolve_WorkerFactoryFails(t *testing.T) {
	t.Parallel()

	sink := &analyticsSink{}
	s := NewHashcashSolver(loggerSilent(), SolverDeps{
		Clock:            &fakeClock{},
		NewWorker:        func() (WorkerChannel, error) { return nil, errors.New("spawn failed") },
		OnSolveCompleted: sink.record,
	})

	_, err := s.Solve(context.Background(), hashcashChallenge(testChallenge(0)))
	if ClassifyError(err) != ErrorTypeWorkerBusy {
		t.Fatalf("Solve() err = %v; want worker_busy", err)
	}
	if len(sink.got) != 1 || sink.got[0].Success {
		t.Fatalf("analytics = %+v; want one failure", sink.got)
	}
}

func TestSolve_RealGoroutineWorker(t *testing.T) {
	t.Parallel()

	s := NewHashcashSolver(loggerSilent(), SolverDeps{Clock: NewMonotonicClock(), NewWorker: GoroutineWorkerFactory})

	sol, err := s.Solve(context.Background(), hashcashChallenge(testChallenge(1)))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if err := NewHashcash(0).Verify(testChallenge(1), sol); err != nil {
		t.Fatalf("solution %q does not verify: %v", sol, err)
	}
}
