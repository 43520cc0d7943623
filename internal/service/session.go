package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// Verify outcomes passed to SessionObserver.VerifyResult.
const (
	VerifyOK        = "ok"
	VerifyInvalid   = "invalid"
	VerifyExpired   = "expired"
	VerifyExhausted = "exhausted"
)

type SessionConfig struct {
	Difficulty     int
	MaxProofLength int64
	ChallengeTTL   time.Duration
	// VerifyAttempts is how many wrong solutions a pending challenge accepts.
	VerifyAttempts int
}

// SessionService is the backend that issues and verifies session challenges.
type SessionService struct {
	log      *slog.Logger
	cfg      SessionConfig
	store    SessionStore
	pow      *Hashcash
	observer SessionObserver
	now      func() time.Time
	// sessions serializes read-modify-write cycles on one session record.
	sessions keyedMutex
}

func NewSessionService(log *slog.Logger, cfg SessionConfig, store SessionStore, observer SessionObserver) *SessionService {
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = time.Minute
	}
	if cfg.VerifyAttempts <= 0 {
		cfg.VerifyAttempts = 1
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &SessionService{
		log:      log.With("component", "session_service"),
		cfg:      cfg,
		store:    store,
		pow:      NewHashcash(cfg.MaxProofLength),
		observer: observer,
		now:      time.Now,
	}
}

type nopObserver struct{}

func (nopObserver) ChallengeIssued(entity.ChallengeType) {}
func (nopObserver) VerifyResult(string)                  {}

// InitSession resumes a known session or creates a new one.
func (s *SessionService) InitSession(ctx context.Context, req entity.InitSessionRequest) (entity.InitSessionResponse, error) {
	if req.SessionID != "" {
		rec, err := s.store.Get(ctx, req.SessionID)
		switch {
		case err == nil:
			return entity.InitSessionResponse{SessionID: rec.ID, NeedChallenge: !rec.Verified()}, nil
		case !errors.Is(err, entity.ErrSessionNotFound):
			return entity.InitSessionResponse{}, err
		}
	}

	rec := entity.SessionRecord{
		ID:        ulid.Make().String(),
		DeviceID:  req.DeviceID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return entity.InitSessionResponse{}, fmt.Errorf("create session: %w", err)
	}
	s.log.Debug("session created", "session_id", rec.ID, "device_id", rec.DeviceID)
	return entity.InitSessionResponse{SessionID: rec.ID, NeedChallenge: true}, nil
}

// Challenge issues a hashcash challenge and stores it as the session's pending one.
// Both the typed variant and the legacy extra field are populated.
func (s *SessionService) Challenge(ctx context.Context, req entity.ChallengeRequest) (entity.ChallengeResponse, error) {
	switch req.ChallengeType {
	case "", entity.ChallengeTypeUnspecified, entity.ChallengeTypeHashcash:
	default:
		return entity.ChallengeResponse{}, fmt.Errorf("%w: %s", entity.ErrUnsupportedChallengeType, req.ChallengeType)
	}

	unlock := s.sessions.Lock(req.SessionID)
	defer unlock()

	rec, err := s.store.Get(ctx, req.SessionID)
	if err != nil {
		return entity.ChallengeResponse{}, err
	}

	hc, err := s.pow.NewChallenge(s.cfg.Difficulty)
	if err != nil {
		return entity.ChallengeResponse{}, fmt.Errorf("new challenge: %w", err)
	}
	legacy, err := json.Marshal(hc)
	if err != nil {
		return entity.ChallengeResponse{}, fmt.Errorf("marshal challenge: %w", err)
	}

	pending := &entity.PendingChallenge{
		ID:        ulid.Make().String(),
		Type:      entity.ChallengeTypeHashcash,
		Hashcash:  hc,
		ExpiresAt: s.now().Add(s.cfg.ChallengeTTL).UTC(),
	}
	rec.Pending = pending
	if err := s.store.Update(ctx, rec); err != nil {
		return entity.ChallengeResponse{}, fmt.Errorf("store challenge: %w", err)
	}
	s.observer.ChallengeIssued(entity.ChallengeTypeHashcash)
	s.log.Debug("challenge issued",
		"session_id", rec.ID,
		"challenge_id", pending.ID,
		"difficulty", hc.Difficulty,
		"expires", pending.ExpiresAt,
	)

	return entity.ChallengeResponse{
		ChallengeID:   pending.ID,
		ChallengeType: entity.ChallengeTypeHashcash,
		Extra:         map[string]string{entity.ExtraChallengeData: string(legacy)},
		ChallengeData: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: &hc},
	}, nil
}

// Verify checks a solution for the pending challenge. A wrong or expired
// solution yields Retry=true; the client should fetch a fresh challenge once
// the pending one is gone.
func (s *SessionService) Verify(ctx context.Context, req entity.VerifyRequest) (entity.VerifyResponse, error) {
	unlock := s.sessions.Lock(req.SessionID)
	defer unlock()

	rec, err := s.store.Get(ctx, req.SessionID)
	if err != nil {
		return entity.VerifyResponse{}, err
	}
	p := rec.Pending
	if p == nil || p.ID != req.ChallengeID {
		return entity.VerifyResponse{}, entity.ErrChallengeNotFound
	}
	if t := req.ChallengeType; t != "" && t != entity.ChallengeTypeUnspecified && t != p.Type {
		return entity.VerifyResponse{}, fmt.Errorf("%w: %s for %s challenge", entity.ErrUnsupportedChallengeType, t, p.Type)
	}

	now := s.now()
	if now.After(p.ExpiresAt) {
		rec.Pending = nil
		if err := s.store.Update(ctx, rec); err != nil {
			return entity.VerifyResponse{}, err
		}
		s.observer.VerifyResult(VerifyExpired)
		return entity.VerifyResponse{Retry: true}, nil
	}

	if err := s.pow.Verify(p.Hashcash, req.Solution); err != nil {
		p.Attempts++
		outcome := VerifyInvalid
		if p.Attempts >= s.cfg.VerifyAttempts {
			rec.Pending = nil
			outcome = VerifyExhausted
		}
		if err := s.store.Update(ctx, rec); err != nil {
			return entity.VerifyResponse{}, err
		}
		s.observer.VerifyResult(outcome)
		s.log.Debug("verify failed", "session_id", rec.ID, "reason", err.Error(), "outcome", outcome)
		return entity.VerifyResponse{Retry: true}, nil
	}

	verifiedAt := now.UTC()
	rec.VerifiedAt = &verifiedAt
	rec.Pending = nil
	if err := s.store.Update(ctx, rec); err != nil {
		return entity.VerifyResponse{}, err
	}
	s.observer.VerifyResult(VerifyOK)
	s.log.Info("session verified", "session_id", rec.ID)
	return entity.VerifyResponse{}, nil
}

func (s *SessionService) Signout(ctx context.Context, req entity.SignoutRequest) (entity.SignoutResponse, error) {
	unlock := s.sessions.Lock(req.SessionID)
	defer unlock()

	if err := s.store.Delete(ctx, req.SessionID); err != nil {
		return entity.SignoutResponse{}, err
	}
	return entity.SignoutResponse{}, nil
}

func (s *SessionService) ChallengeTypes(context.Context, entity.ChallengeTypesRequest) (entity.ChallengeTypesResponse, error) {
	return entity.ChallengeTypesResponse{Types: []entity.ChallengeType{entity.ChallengeTypeHashcash}}, nil
}
