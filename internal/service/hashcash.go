package service

import (
	"context"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// hashBatchSize is how many hashes FindProof computes between cancellation checks.
const hashBatchSize = 1000

type hashFunc func([]byte) []byte

var algorithms = map[string]hashFunc{
	entity.AlgorithmSHA256: func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	},
}

// Solution renders the string the verifier recomputes: "subject:nonce:counter".
func Solution(subject, nonce string, counter int64) string {
	return string(proofMessage(nil, subject, nonce, counter))
}

func proofMessage(buf []byte, subject, nonce string, counter int64) []byte {
	buf = buf[:0]
	buf = append(buf, subject...)
	buf = append(buf, ':')
	buf = append(buf, nonce...)
	buf = append(buf, ':')
	return strconv.AppendInt(buf, counter, 10)
}

// checkDifficulty reports whether the first difficulty bytes of hash are zero.
func checkDifficulty(hash []byte, difficulty int) bool {
	if difficulty > len(hash) {
		return false
	}
	for _, b := range hash[:difficulty] {
		if b != 0 {
			return false
		}
	}
	return true
}

// FindProof scans counters in [RangeStart, RangeStart+RangeSize) in order and
// returns the first one that satisfies the challenge difficulty.
// An exhausted range yields (nil, nil).
func FindProof(ctx context.Context, p entity.FindProofParams) (*entity.Proof, error) {
	hash, ok := algorithms[p.Challenge.Algorithm]
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("unsupported algorithm %q", p.Challenge.Algorithm), nil)
	}
	if p.RangeStart < 0 {
		return nil, NewValidationError("range start must be non-negative", nil)
	}
	if p.RangeSize <= 0 {
		return nil, nil
	}

	end := p.RangeStart + p.RangeSize
	if end < p.RangeStart {
		return nil, NewValidationError("range overflows int64", nil)
	}

	buf := make([]byte, 0, len(p.Challenge.Subject)+len(p.Challenge.Nonce)+22)
	var attempts int64
	for counter := p.RangeStart; counter < end; counter++ {
		if attempts%hashBatchSize == 0 && attempts > 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		buf = proofMessage(buf, p.Challenge.Subject, p.Challenge.Nonce, counter)
		sum := hash(buf)
		attempts++
		if checkDifficulty(sum, p.Challenge.Difficulty) {
			return &entity.Proof{Counter: counter, Hash: sum, Attempts: attempts}, nil
		}
	}
	return nil, nil
}

// Hashcash issues and verifies challenges on the backend side.
type Hashcash struct {
	MaxProofLength int64
}

func NewHashcash(maxProofLength int64) *Hashcash {
	if maxProofLength <= 0 {
		maxProofLength = entity.DefaultMaxProofLength
	}
	return &Hashcash{MaxProofLength: maxProofLength}
}

func (h *Hashcash) NewChallenge(difficulty int) (entity.HashcashChallenge, error) {
	subject, err := randomToken(16)
	if err != nil {
		return entity.HashcashChallenge{}, err
	}
	nonce, err := randomToken(16)
	if err != nil {
		return entity.HashcashChallenge{}, err
	}
	return entity.HashcashChallenge{
		Difficulty:     difficulty,
		Subject:        subject,
		Algorithm:      entity.AlgorithmSHA256,
		Nonce:          nonce,
		MaxProofLength: h.MaxProofLength,
	}, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

var (
	errBadSolution   = errors.New("malformed solution")
	errWrongSolution = errors.New("solution does not match challenge")
	errPowInvalid    = errors.New("pow invalid")
)

// Verify checks a "subject:nonce:counter" solution against ch.
func (h *Hashcash) Verify(ch entity.HashcashChallenge, solution string) error {
	hash, ok := algorithms[ch.Algorithm]
	if !ok {
		return errors.New("unsupported challenge")
	}
	i := strings.LastIndexByte(solution, ':')
	if i < 0 {
		return errBadSolution
	}
	counter, err := strconv.ParseInt(solution[i+1:], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: counter: %v", errBadSolution, err)
	}
	if solution[:i] != ch.Subject+":"+ch.Nonce {
		return errWrongSolution
	}
	if counter < 0 || counter >= ch.MaxProofLength {
		return fmt.Errorf("%w: counter out of range", errBadSolution)
	}
	if !checkDifficulty(hash(proofMessage(nil, ch.Subject, ch.Nonce, counter)), ch.Difficulty) {
		return errPowInvalid
	}
	return nil
}
