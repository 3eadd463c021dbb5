package domain

import (
	"time"

	"github.com/pkg/errors"
)

// Action recommended trading action.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// RiskLevel coarse qualitative risk bucket.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel validates a caller-supplied risk level string.
// Anything other than Low, Medium or High is rejected.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(s), nil
	}
	return "", errors.Errorf("unknown risk level %q", s)
}

// Advice is a heuristic trading recommendation. It is generated on demand and
// never mutated after creation.
type Advice struct {
	Action Action `json:"action"`
	Symbol string `json:"symbol"`
	// Rationale free-text explanation of the recommendation.
	Rationale string `json:"rationale"`
	// Confidence score in the 0-100 range.
	Confidence int `json:"confidence"`
	// Risk echoes the caller's stated risk tolerance.
	Risk      RiskLevel `json:"risk"`
	Timestamp time.Time `json:"timestamp"`
}

// Suggestion is a single portfolio rebalancing proposal.
type Suggestion struct {
	Action    Action `json:"action"`
	Symbol    string `json:"symbol"`
	Rationale string `json:"rationale"`
	// Priority 1-10, higher means more urgent.
	Priority int `json:"priority"`
}

// RebalancePlan is the output of the portfolio optimizer.
type RebalancePlan struct {
	Suggestions       []Suggestion `json:"suggestions"`
	RebalancingNeeded bool         `json:"rebalancingNeeded"`
}
