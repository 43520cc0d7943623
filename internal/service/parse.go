package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

type fieldIssue struct {
	field   string
	problem string
}

func (i fieldIssue) String() string { return fmt.Sprintf("field %q: %s", i.field, i.problem) }

// ParseHashcashChallenge decodes and validates a challenge sent as JSON.
// max_proof_length defaults to entity.DefaultMaxProofLength when absent.
func ParseHashcashChallenge(raw string) (entity.HashcashChallenge, error) {
	data := []byte(raw)
	if !json.Valid(data) {
		var probe any
		return entity.HashcashChallenge{}, NewValidationError("failed to parse hashcash challenge", json.Unmarshal(data, &probe))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return entity.HashcashChallenge{}, NewValidationError("hashcash challenge must be a JSON object", nil)
	}

	var (
		ch     entity.HashcashChallenge
		issues []fieldIssue
		ok     bool
	)
	report := func(field, problem string) { issues = append(issues, fieldIssue{field, problem}) }

	if n, present, valid := jsonInt(fields, "difficulty"); !present {
		report("difficulty", "required")
	} else if !valid || n < 0 || n > math.MaxInt32 {
		report("difficulty", "must be a non-negative integer")
	} else {
		ch.Difficulty = int(n)
	}

	if ch.Subject, ok = jsonNonEmptyString(fields, "subject"); !ok {
		report("subject", "must be a non-empty string")
	}

	if alg, _ := jsonNonEmptyString(fields, "algorithm"); alg != entity.AlgorithmSHA256 {
		report("algorithm", fmt.Sprintf("must be %q", entity.AlgorithmSHA256))
	} else {
		ch.Algorithm = alg
	}

	if ch.Nonce, ok = jsonNonEmptyString(fields, "nonce"); !ok {
		report("nonce", "must be a non-empty string")
	}

	if n, present, valid := jsonInt(fields, "max_proof_length"); !present {
		ch.MaxProofLength = entity.DefaultMaxProofLength
	} else if !valid || n <= 0 {
		report("max_proof_length", "must be a positive integer")
	} else {
		ch.MaxProofLength = n
	}

	if raw, present := fields["verifier"]; present {
		if err := json.Unmarshal(raw, &ch.Verifier); err != nil || isNull(raw) {
			report("verifier", "must be a string")
		}
	}

	if err := issuesError(issues); err != nil {
		return entity.HashcashChallenge{}, err
	}
	return ch, nil
}

// ValidateHashcashChallenge applies the parser's schema to an already typed
// challenge. A zero MaxProofLength is treated as unset.
func ValidateHashcashChallenge(ch entity.HashcashChallenge) (entity.HashcashChallenge, error) {
	var issues []fieldIssue
	if ch.Difficulty < 0 {
		issues = append(issues, fieldIssue{"difficulty", "must be a non-negative integer"})
	}
	if ch.Subject == "" {
		issues = append(issues, fieldIssue{"subject", "must be a non-empty string"})
	}
	if ch.Algorithm != entity.AlgorithmSHA256 {
		issues = append(issues, fieldIssue{"algorithm", fmt.Sprintf("must be %q", entity.AlgorithmSHA256)})
	}
	if ch.Nonce == "" {
		issues = append(issues, fieldIssue{"nonce", "must be a non-empty string"})
	}
	switch {
	case ch.MaxProofLength == 0:
		ch.MaxProofLength = entity.DefaultMaxProofLength
	case ch.MaxProofLength < 0:
		issues = append(issues, fieldIssue{"max_proof_length", "must be a positive integer"})
	}
	if err := issuesError(issues); err != nil {
		return entity.HashcashChallenge{}, err
	}
	return ch, nil
}

// issuesError names the field when only one is wrong. With several, the
// message stays generic and the details go to Issues.
func issuesError(issues []fieldIssue) error {
	switch len(issues) {
	case 0:
		return nil
	case 1:
		err := NewValidationError("invalid hashcash challenge: "+issues[0].String(), nil)
		err.Issues = []string{issues[0].String()}
		return err
	}
	err := NewValidationError("invalid hashcash challenge", nil)
	for _, is := range issues {
		err.Issues = append(err.Issues, is.String())
	}
	return err
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func jsonNonEmptyString(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// jsonInt accepts JSON numbers with an integral value; quoted numbers are rejected.
func jsonInt(fields map[string]json.RawMessage, key string) (n int64, present, valid bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, false, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, true, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, true, false
	}
	if i, err := num.Int64(); err == nil {
		return i, true, true
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, true, false
	}
	return int64(f), true, true
}
