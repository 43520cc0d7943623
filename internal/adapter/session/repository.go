package session

import (
	"context"
	"fmt"
	"maps"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// Repository is a thin wrapper over the session RPC client. Every call is a
// single request; errors are wrapped so the transport cause stays reachable.
type Repository struct {
	client SessionServiceClient
}

func NewRepository(client SessionServiceClient) *Repository {
	return &Repository{client: client}
}

func (r *Repository) InitSession(ctx context.Context, sessionID, deviceID string) (entity.InitSessionResponse, error) {
	resp, err := r.client.InitSession(ctx, entity.InitSessionRequest{SessionID: sessionID, DeviceID: deviceID})
	if err != nil {
		return entity.InitSessionResponse{}, fmt.Errorf("init session: %w", err)
	}
	return resp, nil
}

// Challenge requests a challenge and normalizes the response into entity.Challenge.
func (r *Repository) Challenge(ctx context.Context, sessionID string, t entity.ChallengeType) (entity.Challenge, error) {
	resp, err := r.client.Challenge(ctx, entity.ChallengeRequest{SessionID: sessionID, ChallengeType: t})
	if err != nil {
		return entity.Challenge{}, fmt.Errorf("request challenge: %w", err)
	}
	return normalize(resp), nil
}

func (r *Repository) VerifySession(ctx context.Context, req entity.VerifyRequest) (entity.VerifyResponse, error) {
	resp, err := r.client.Verify(ctx, req)
	if err != nil {
		return entity.VerifyResponse{}, fmt.Errorf("verify session: %w", err)
	}
	return resp, nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.client.Signout(ctx, entity.SignoutRequest{SessionID: sessionID}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *Repository) GetChallengeTypes(ctx context.Context) ([]entity.ChallengeType, error) {
	resp, err := r.client.ChallengeTypes(ctx, entity.ChallengeTypesRequest{})
	if err != nil {
		return nil, fmt.Errorf("get challenge types: %w", err)
	}
	return resp.Types, nil
}

// normalize picks the typed variant when one is populated, falls back to the
// top-level authorize URL, and leaves legacy extra data for the solver.
func normalize(resp entity.ChallengeResponse) entity.Challenge {
	ch := entity.Challenge{
		ID:    resp.ChallengeID,
		Type:  resp.ChallengeType,
		Extra: maps.Clone(resp.Extra),
	}

	if d := resp.ChallengeData; d != nil {
		switch {
		case d.Hashcash != nil && (d.Case == "" || d.Case == entity.CaseHashcash):
			hc := *d.Hashcash
			ch.Data = &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: &hc}
		case d.Turnstile != nil && (d.Case == "" || d.Case == entity.CaseTurnstile):
			ts := *d.Turnstile
			ch.Data = &entity.ChallengeData{Case: entity.CaseTurnstile, Turnstile: &ts}
		case d.GitHub != nil && (d.Case == "" || d.Case == entity.CaseGitHub):
			gh := *d.GitHub
			ch.Data = &entity.ChallengeData{Case: entity.CaseGitHub, GitHub: &gh}
		}
	}
	if ch.Data == nil && resp.AuthorizeURL != "" {
		ch.Data = &entity.ChallengeData{Case: entity.CaseGitHub, GitHub: &entity.GitHubChallengeData{AuthorizeURL: resp.AuthorizeURL}}
	}

	if ch.Type == "" || ch.Type == entity.ChallengeTypeUnspecified {
		ch.Type = typeForCase(ch.Data)
	}
	return ch
}

func typeForCase(d *entity.ChallengeData) entity.ChallengeType {
	if d == nil {
		return entity.ChallengeTypeUnspecified
	}
	switch d.Case {
	case entity.CaseHashcash:
		return entity.ChallengeTypeHashcash
	case entity.CaseTurnstile:
		return entity.ChallengeTypeTurnstile
	case entity.CaseGitHub:
		return entity.ChallengeTypeGitHub
	default:
		return entity.ChallengeTypeUnspecified
	}
}
