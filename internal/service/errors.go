package service

import (
	"errors"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNoProof    ErrorType = "no_proof"
	ErrorTypeWorkerBusy ErrorType = "worker_busy"
	ErrorTypeUnknown    ErrorType = "unknown"
)

var (
	ErrValidation = errors.New("challenge validation failed")
	ErrNoProof    = errors.New("no valid proof found")
	ErrWorkerBusy = errors.New("worker busy")
)

// SolveError is the error returned by every solver stage.
// errors.Is matches it against ErrValidation, ErrNoProof and ErrWorkerBusy by Type.
type SolveError struct {
	Type    ErrorType
	Message string
	// Issues lists every schema problem found; only logged, never part of Error().
	Issues []string
	Err    error
}

func (e *SolveError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SolveError) Unwrap() error { return e.Err }

func (e *SolveError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Type == ErrorTypeValidation
	case ErrNoProof:
		return e.Type == ErrorTypeNoProof
	case ErrWorkerBusy:
		return e.Type == ErrorTypeWorkerBusy
	}
	return false
}

func NewValidationError(msg string, cause error) *SolveError {
	return &SolveError{Type: ErrorTypeValidation, Message: msg, Err: cause}
}

func NewNoProofError(msg string) *SolveError {
	return &SolveError{Type: ErrorTypeNoProof, Message: msg}
}

func NewWorkerBusyError(msg string, cause error) *SolveError {
	return &SolveError{Type: ErrorTypeWorkerBusy, Message: msg, Err: cause}
}

// ClassifyError maps err to an ErrorType. Typed errors win; message matching
// only covers errors raised outside this package.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}
	var se *SolveError
	if errors.As(err, &se) {
		return se.Type
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "worker busy"):
		return ErrorTypeWorkerBusy
	case strings.Contains(msg, "no valid proof"), strings.Contains(msg, "no proof"):
		return ErrorTypeNoProof
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "parse"), strings.Contains(msg, "validation"):
		return ErrorTypeValidation
	}
	return ErrorTypeUnknown
}
