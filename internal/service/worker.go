package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// WorkerFactory creates one WorkerChannel per solve attempt.
type WorkerFactory func() (WorkerChannel, error)

// GoroutineWorkerFactory is a WorkerFactory backed by NewGoroutineWorker.
func GoroutineWorkerFactory() (WorkerChannel, error) {
	return NewGoroutineWorker(), nil
}

type workerRequest struct {
	ctx    context.Context
	params entity.FindProofParams
	reply  chan workerReply
}

type workerReply struct {
	proof *entity.Proof
	err   error
}

// GoroutineWorker owns a single goroutine that receives FindProof requests
// over a channel. It accepts one request at a time.
type GoroutineWorker struct {
	ctx    context.Context
	cancel context.CancelFunc
	reqs   chan workerRequest
	done   chan struct{}
	busy   atomic.Bool
	once   sync.Once
}

func NewGoroutineWorker() *GoroutineWorker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &GoroutineWorker{
		ctx:    ctx,
		cancel: cancel,
		reqs:   make(chan workerRequest),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *GoroutineWorker) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.reqs:
			proof, err := FindProof(req.ctx, req.params)
			req.reply <- workerReply{proof: proof, err: err}
		}
	}
}

func (w *GoroutineWorker) FindProof(ctx context.Context, p entity.FindProofParams) (*entity.Proof, error) {
	if w.ctx.Err() != nil {
		return nil, NewWorkerBusyError("worker terminated", nil)
	}
	if !w.busy.CompareAndSwap(false, true) {
		return nil, NewWorkerBusyError("worker busy", nil)
	}
	defer w.busy.Store(false)

	// The search stops on caller cancellation or on Terminate.
	sctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(w.ctx, cancel)
	defer stop()

	req := workerRequest{ctx: sctx, params: p, reply: make(chan workerReply, 1)}
	select {
	case w.reqs <- req:
	case <-w.ctx.Done():
		return nil, NewWorkerBusyError("worker terminated", nil)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r := <-req.reply
	if r.err != nil && errors.Is(r.err, context.Canceled) && ctx.Err() == nil {
		return nil, NewWorkerBusyError("worker terminated", r.err)
	}
	return r.proof, r.err
}

// Terminate stops the worker goroutine and waits for it to exit.
func (w *GoroutineWorker) Terminate() {
	w.once.Do(func() {
		w.cancel()
		<-w.done
	})
}
