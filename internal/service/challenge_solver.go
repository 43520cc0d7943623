package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// ChallengeSolverService routes a challenge to the solver registered for its type.
type ChallengeSolverService struct {
	mu      sync.RWMutex
	solvers map[entity.ChallengeType]ChallengeSolver
}

func NewChallengeSolverService() *ChallengeSolverService {
	return &ChallengeSolverService{solvers: make(map[entity.ChallengeType]ChallengeSolver)}
}

func (s *ChallengeSolverService) Register(t entity.ChallengeType, solver ChallengeSolver) {
	s.mu.Lock()
	s.solvers[t] = solver
	s.mu.Unlock()
}

func (s *ChallengeSolverService) Solve(ctx context.Context, ch entity.Challenge) (string, error) {
	s.mu.RLock()
	solver, ok := s.solvers[ch.Type]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no solver registered for challenge type %q", ch.Type)
	}
	return solver.Solve(ctx, ch)
}

// GitHubSolver returns the OAuth authorize URL the user must visit.
type GitHubSolver struct{}

func (GitHubSolver) Solve(_ context.Context, ch entity.Challenge) (string, error) {
	if ch.Data != nil && ch.Data.Case == entity.CaseGitHub && ch.Data.GitHub != nil && ch.Data.GitHub.AuthorizeURL != "" {
		return ch.Data.GitHub.AuthorizeURL, nil
	}
	if u := legacyAuthorizeURL(ch.Extra[entity.ExtraChallengeData]); u != "" {
		return u, nil
	}
	return "", NewValidationError("missing github authorize url", nil)
}

// legacyAuthorizeURL reads the old extra format: a raw URL or {"authorizeUrl": "..."}.
func legacyAuthorizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "{") {
		var v struct {
			AuthorizeURL string `json:"authorizeUrl"`
		}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return ""
		}
		return v.AuthorizeURL
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return raw
	}
	return ""
}

// TokenProvider obtains a turnstile token for a site key, e.g. from an embedded browser.
type TokenProvider func(ctx context.Context, siteKey, action string) (string, error)

type TurnstileSolver struct {
	Provider TokenProvider
}

func (s TurnstileSolver) Solve(ctx context.Context, ch entity.Challenge) (string, error) {
	if s.Provider == nil {
		return "", NewValidationError("turnstile challenges need a token provider", nil)
	}
	if ch.Data == nil || ch.Data.Case != entity.CaseTurnstile || ch.Data.Turnstile == nil {
		return "", NewValidationError("missing turnstile challenge data", nil)
	}
	tok, err := s.Provider(ctx, ch.Data.Turnstile.SiteKey, ch.Data.Turnstile.Action)
	if err != nil {
		return "", fmt.Errorf("turnstile token: %w", err)
	}
	return tok, nil
}
