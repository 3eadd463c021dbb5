package domain

// ActivityKind discriminates activity feed entries.
type ActivityKind string

const (
	ActivityKindTrade  ActivityKind = "trade"
	ActivityKindAdvice ActivityKind = "advice"
)

// ActivityItem is a tagged union over trades and advisor decisions.
// Exactly one of Trade or Advice is set, selected by Kind.
type ActivityItem struct {
	Kind   ActivityKind `json:"kind"`
	Trade  *Trade       `json:"trade,omitempty"`
	Advice *Advice      `json:"advice,omitempty"`
}

// NewTradeActivity wraps a trade into an activity item.
func NewTradeActivity(t Trade) ActivityItem {
	return ActivityItem{Kind: ActivityKindTrade, Trade: &t}
}

// NewAdviceActivity wraps an advisor decision into an activity item.
func NewAdviceActivity(a Advice) ActivityItem {
	return ActivityItem{Kind: ActivityKindAdvice, Advice: &a}
}
