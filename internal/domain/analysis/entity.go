package analysis

import (
	"time"
)

// VerdictID tipe untuk Verdict
type VerdictID string

// RiskLevel enum
type RiskLevel string

const (
	RiskSafe       RiskLevel = "Safe"
	RiskSuspicious RiskLevel = "Suspicious"
	RiskMalicious  RiskLevel = "Malicious"
)

// rank for escalate-only folding; an outcome can raise risk, never lower it
func (r RiskLevel) rank() int {
	switch r {
	case RiskSuspicious:
		return 1
	case RiskMalicious:
		return 2
	default:
		return 0
	}
}

// Escalate returns the higher of the two risk levels.
func (r RiskLevel) Escalate(other RiskLevel) RiskLevel {
	if other.rank() > r.rank() {
		return other
	}
	return r
}

// CheckOutcome is one sub-check's contribution. It only lives during
// aggregation and is never persisted.
type CheckOutcome struct {
	Label     string
	RiskDelta int
	Failed    bool
	Risk      RiskLevel // highest risk this outcome implies, "" when neutral
}

// Aggregate Root: Verdict
type Verdict struct {
	ID         VerdictID `json:"id,omitempty"`
	Risk       RiskLevel `json:"risk"`
	Details    string    `json:"details"`
	Confidence int       `json:"confidence"`
	AnalyzedAt time.Time `json:"analyzed_at,omitempty"`
}

// TextVerdict is the output of the text/platform pipeline.
type TextVerdict struct {
	Analysis string `json:"analysis"`
	Action   string `json:"action"`
}

// Fold accumulates sub-check outcomes into a verdict: labels concatenate in
// order, deltas sum without clamping, risk only escalates.
func (v *Verdict) Fold(o CheckOutcome) {
	v.Details += o.Label
	v.Confidence += o.RiskDelta
	if o.Risk != "" {
		v.Risk = v.Risk.Escalate(o.Risk)
	}
}
