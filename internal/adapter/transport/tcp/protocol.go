package tcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

const (
	MethodInitSession    = "InitSession"
	MethodChallenge      = "Challenge"
	MethodVerify         = "Verify"
	MethodSignout        = "Signout"
	MethodChallengeTypes = "ChallengeTypes"
)

// Error codes carried in Response.Error.Code.
const (
	CodeBadRequest        = "bad_request"
	CodeUnknownMethod     = "unknown_method"
	CodeRateLimited       = "rate_limited"
	CodeNotFound          = "not_found"
	CodeChallengeNotFound = "challenge_not_found"
	CodeInvalidArgument   = "invalid_argument"
	CodeInternal          = "internal"
)

var (
	ErrRateLimited = errors.New("rate limited")
	ErrBadRequest  = errors.New("bad request")
)

// Request is one line sent by the client.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one line sent back. Exactly one of Result and Error is set.
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RemoteError is an error returned by the server. It unwraps to the matching
// entity sentinel so callers can use errors.Is across the wire.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %s: %s", e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	switch e.Code {
	case CodeNotFound:
		return entity.ErrSessionNotFound
	case CodeChallengeNotFound:
		return entity.ErrChallengeNotFound
	case CodeInvalidArgument:
		return entity.ErrUnsupportedChallengeType
	case CodeRateLimited:
		return ErrRateLimited
	case CodeBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return CodeNotFound
	case errors.Is(err, entity.ErrChallengeNotFound):
		return CodeChallengeNotFound
	case errors.Is(err, entity.ErrUnsupportedChallengeType):
		return CodeInvalidArgument
	case errors.Is(err, ErrBadRequest):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

func errorResponse(id, code, msg string) Response {
	return Response{ID: id, Error: &ErrorBody{Code: code, Message: msg}}
}
