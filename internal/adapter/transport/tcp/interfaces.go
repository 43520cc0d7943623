package tcp

import (
	"context"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

//go:generate mockgen -source=interfaces.go -destination=./server_mock.go -package=tcp

type SessionService interface {
	InitSession(ctx context.Context, req entity.InitSessionRequest) (entity.InitSessionResponse, error)
	Challenge(ctx context.Context, req entity.ChallengeRequest) (entity.ChallengeResponse, error)
	Verify(ctx context.Context, req entity.VerifyRequest) (entity.VerifyResponse, error)
	Signout(ctx context.Context, req entity.SignoutRequest) (entity.SignoutResponse, error)
	ChallengeTypes(ctx context.Context, req entity.ChallengeTypesRequest) (entity.ChallengeTypesResponse, error)
}
