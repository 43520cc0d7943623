package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

func TestGoroutineWorker_FindsSameProofAsMainGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	params := entity.FindProofParams{Challenge: testChallenge(1), RangeSize: 100_000}
	want, err := FindProof(context.Background(), params)
	if err != nil || want == nil {
		t.Fatalf("FindProof() = %v, %v", want, err)
	}

	w := NewGoroutineWorker()
	defer w.Terminate()

	got, err := w.FindProof(context.Background(), params)
	if err != nil {
		t.Fatalf("worker FindProof() error: %v", err)
	}
	if got == nil || got.Counter != want.Counter || got.Attempts != want.Attempts {
		t.Fatalf("worker proof = %+v; want %+v", got, want)
	}

	// No proof is a nil result on both paths.
	got, err = w.FindProof(context.Background(), entity.FindProofParams{Challenge: testChallenge(8), RangeSize: 1})
	if err != nil || got != nil {
		t.Fatalf("exhausted range on worker = %v, %v; want nil, nil", got, err)
	}
}

func TestGoroutineWorker_BusyWhileSearching(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewGoroutineWorker()
	defer w.Terminate()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan error, 1)
	go func() {
		_, err := w.FindProof(ctx, entity.FindProofParams{Challenge: testChallenge(32), RangeSize: 1 << 40})
		first <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !w.busy.Load() {
		if time.Now().After(deadline) {
			t.Fatal("worker never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	_, err := w.FindProof(context.Background(), entity.FindProofParams{Challenge: testChallenge(0), RangeSize: 1})
	if !errors.Is(err, ErrWorkerBusy) {
		t.Fatalf("second dispatch err = %v; want worker busy", err)
	}

	cancel()
	select {
	case err := <-first:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("first dispatch err = %v; want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop after cancel")
	}
}

func TestGoroutineWorker_TerminateInterruptsSearch(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewGoroutineWorker()

	res := make(chan error, 1)
	go func() {
		_, err := w.FindProof(context.Background(), entity.FindProofParams{Challenge: testChallenge(32), RangeSize: 1 << 40})
		res <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !w.busy.Load() {
		if time.Now().After(deadline) {
			t.Fatal("worker never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	w.Terminate()
	w.Terminate() // idempotent

	select {
	case err := <-res:
		if ClassifyError(err) != ErrorTypeWorkerBusy {
			t.Fatalf("interrupted search err = %v; want worker_busy classification", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("FindProof did not return after Terminate")
	}

	if _, err := w.FindProof(context.Background(), entity.FindProofParams{Challenge: testChallenge(0), RangeSize: 1}); !errors.Is(err, ErrWorkerBusy) {
		t.Fatalf("dispatch after Terminate err = %v; want worker terminated", err)
	}
}
