package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

const namespace = "sessionpow"

// Recorder exports solve analytics and backend session events.
type Recorder struct {
	solveDuration    *prometheus.HistogramVec
	solveErrors      *prometheus.CounterVec
	solveIterations  prometheus.Histogram
	challengesIssued *prometheus.CounterVec
	verifyResults    *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of hashcash solve attempts.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"outcome", "used_worker"}),
		solveErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_errors_total",
			Help:      "Failed solve attempts by error type.",
		}, []string{"error_type"}),
		solveIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_iterations",
			Help:      "Hashes computed by successful solves.",
			Buckets:   prometheus.ExponentialBuckets(1, 16, 8),
		}),
		challengesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenges_issued_total",
			Help:      "Challenges issued by the session backend.",
		}, []string{"type"}),
		verifyResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_results_total",
			Help:      "Solution verifications by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{r.solveDuration, r.solveErrors, r.solveIterations, r.challengesIssued, r.verifyResults} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return r, nil
}

// OnSolveCompleted matches the solver's analytics callback.
func (r *Recorder) OnSolveCompleted(a entity.SolveAnalytics) {
	outcome := "success"
	if !a.Success {
		outcome = "failure"
		r.solveErrors.WithLabelValues(a.ErrorType).Inc()
	}
	worker := "false"
	if a.UsedWorker {
		worker = "true"
	}
	r.solveDuration.WithLabelValues(outcome, worker).Observe(a.DurationMs / 1000)
	if a.Success && a.IterationCount != nil {
		r.solveIterations.Observe(float64(*a.IterationCount))
	}
}

func (r *Recorder) ChallengeIssued(t entity.ChallengeType) {
	r.challengesIssued.WithLabelValues(string(t)).Inc()
}

func (r *Recorder) VerifyResult(outcome string) {
	r.verifyResults.WithLabelValues(outcome).Inc()
}
