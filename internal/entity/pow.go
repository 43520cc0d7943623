package entity

const (
	AlgorithmSHA256 = "sha256"

	DefaultMaxProofLength int64 = 1_000_000
)

// HashcashChallenge is the puzzle issued by the session backend.
type HashcashChallenge struct {
	Difficulty     int    `json:"difficulty"`
	Subject        string `json:"subject"`
	Algorithm      string `json:"algorithm"`
	Nonce          string `json:"nonce"`
	MaxProofLength int64  `json:"max_proof_length"`
	Verifier       string `json:"verifier,omitempty"`
}

type FindProofParams struct {
	Challenge  HashcashChallenge
	RangeStart int64
	RangeSize  int64
}

// Proof is a counter whose digest satisfies the challenge difficulty.
type Proof struct {
	Counter  int64
	Hash     []byte
	Attempts int64
}

// SolveAnalytics is reported once per solve attempt.
type SolveAnalytics struct {
	DurationMs     float64 `json:"duration_ms"`
	Success        bool    `json:"success"`
	ErrorType      string  `json:"error_type,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
	Difficulty     int     `json:"difficulty"`
	IterationCount *int64  `json:"iteration_count,omitempty"`
	UsedWorker     bool    `json:"used_worker"`
}
