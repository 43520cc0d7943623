package service

import (
	"context"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

//go:generate mockgen -source=interfaces.go -destination=./service_mock.go -package=service

// WorkerChannel runs FindProof in a separate execution context.
// Terminate releases it; it must be safe to call more than once.
type WorkerChannel interface {
	FindProof(ctx context.Context, p entity.FindProofParams) (*entity.Proof, error)
	Terminate()
}

// SessionStore persists backend session state.
type SessionStore interface {
	Create(ctx context.Context, rec entity.SessionRecord) error
	Get(ctx context.Context, id string) (entity.SessionRecord, error)
	Update(ctx context.Context, rec entity.SessionRecord) error
	Delete(ctx context.Context, id string) error
}

// ChallengeSolver produces the solution string for one challenge.
type ChallengeSolver interface {
	Solve(ctx context.Context, ch entity.Challenge) (string, error)
}

// SessionObserver receives backend session events, e.g. for metrics.
type SessionObserver interface {
	ChallengeIssued(t entity.ChallengeType)
	VerifyResult(outcome string)
}
