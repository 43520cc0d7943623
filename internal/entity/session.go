package entity

import (
	"errors"
	"time"
)

type ChallengeType string

const (
	ChallengeTypeUnspecified ChallengeType = "unspecified"
	ChallengeTypeTurnstile   ChallengeType = "turnstile"
	ChallengeTypeHashcash    ChallengeType = "hashcash"
	ChallengeTypeGitHub      ChallengeType = "github"
)

// ExtraChallengeData is the legacy extra key carrying challenge JSON.
const ExtraChallengeData = "challengeData"

// Oneof cases of ChallengeData.
const (
	CaseTurnstile = "turnstile"
	CaseHashcash  = "hashcash"
	CaseGitHub    = "github"
)

type TurnstileChallengeData struct {
	SiteKey string `json:"site_key"`
	Action  string `json:"action,omitempty"`
}

type GitHubChallengeData struct {
	AuthorizeURL string `json:"authorize_url"`
}

// ChallengeData is a oneof: Case names the populated variant.
type ChallengeData struct {
	Case      string                  `json:"case"`
	Turnstile *TurnstileChallengeData `json:"turnstile,omitempty"`
	Hashcash  *HashcashChallenge      `json:"hashcash,omitempty"`
	GitHub    *GitHubChallengeData    `json:"github,omitempty"`
}

// Challenge is the normalized challenge handed to solvers.
type Challenge struct {
	ID    string
	Type  ChallengeType
	Extra map[string]string
	Data  *ChallengeData
}

type InitSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	DeviceID  string `json:"device_id,omitempty"`
}

type InitSessionResponse struct {
	SessionID     string            `json:"session_id"`
	NeedChallenge bool              `json:"need_challenge"`
	Extra         map[string]string `json:"extra,omitempty"`
}

type ChallengeRequest struct {
	SessionID     string        `json:"session_id"`
	ChallengeType ChallengeType `json:"challenge_type,omitempty"`
}

type ChallengeResponse struct {
	ChallengeID   string            `json:"challenge_id"`
	ChallengeType ChallengeType     `json:"challenge_type"`
	Extra         map[string]string `json:"extra,omitempty"`
	AuthorizeURL  string            `json:"authorize_url,omitempty"`
	ChallengeData *ChallengeData    `json:"challenge_data,omitempty"`
}

type VerifyRequest struct {
	SessionID     string        `json:"session_id"`
	ChallengeID   string        `json:"challenge_id"`
	ChallengeType ChallengeType `json:"challenge_type"`
	Solution      string        `json:"solution"`
}

type VerifyResponse struct {
	Retry       bool   `json:"retry"`
	WaitSeconds int    `json:"wait_seconds,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type SignoutRequest struct {
	SessionID string `json:"session_id"`
}

type SignoutResponse struct{}

type ChallengeTypesRequest struct{}

type ChallengeTypesResponse struct {
	Types []ChallengeType `json:"types"`
}

// PendingChallenge is a challenge issued to a session and not yet solved.
type PendingChallenge struct {
	ID        string            `json:"id"`
	Type      ChallengeType     `json:"type"`
	Hashcash  HashcashChallenge `json:"hashcash"`
	ExpiresAt time.Time         `json:"expires_at"`
	Attempts  int               `json:"attempts"`
}

// SessionRecord is the backend's view of one session.
type SessionRecord struct {
	ID         string
	DeviceID   string
	CreatedAt  time.Time
	VerifiedAt *time.Time
	Pending    *PendingChallenge
}

func (r SessionRecord) Verified() bool { return r.VerifiedAt != nil }

var (
	ErrSessionNotFound          = errors.New("session not found")
	ErrChallengeNotFound        = errors.New("challenge not found")
	ErrUnsupportedChallengeType = errors.New("unsupported challenge type")
)
