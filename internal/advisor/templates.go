package advisor

import (
	"fmt"

	"github.com/papertrade/papertrade/internal/domain"
)

// Rationale templates per action, parameterized by symbol. The Low and High
// risk extremes pin a specific template; Medium picks uniformly.

func buyRationales(symbol string) []string {
	return []string{
		fmt.Sprintf("Strong momentum detected in %s with increasing volume", symbol),
		fmt.Sprintf("%s showing bullish patterns on technical indicators", symbol),
		fmt.Sprintf("Fundamental analysis suggests %s is undervalued", symbol),
		fmt.Sprintf("%s breaking key resistance levels with positive sentiment", symbol),
		fmt.Sprintf("Market conditions favorable for %s based on sector analysis", symbol),
	}
}

func sellRationales(symbol string) []string {
	return []string{
		fmt.Sprintf("%s showing bearish divergence with declining momentum", symbol),
		fmt.Sprintf("Technical indicators suggest overbought conditions for %s", symbol),
		fmt.Sprintf("Profit-taking opportunity identified for %s", symbol),
		fmt.Sprintf("%s approaching key resistance levels", symbol),
		fmt.Sprintf("Sector rotation indicates potential weakness in %s", symbol),
	}
}

func holdRationales(symbol string) []string {
	return []string{
		fmt.Sprintf("%s trading in consolidation range - wait for breakout", symbol),
		fmt.Sprintf("Mixed signals for %s - better to wait for clarity", symbol),
		fmt.Sprintf("%s at key support levels - monitor for reversal", symbol),
		fmt.Sprintf("Market uncertainty suggests holding %s position", symbol),
		fmt.Sprintf("%s fundamentals remain strong despite short-term volatility", symbol),
	}
}

func (a *Advisor) rationale(action domain.Action, symbol string, risk domain.RiskLevel) string {
	var (
		pool         []string
		lowIdx       int
		lowSuffix    string
		highIdx      int
		highSuffix   string
	)

	switch action {
	case domain.ActionBuy:
		pool = buyRationales(symbol)
		lowIdx, lowSuffix = 0, " (Conservative approach)"
		highIdx, highSuffix = 2, " (Aggressive opportunity)"
	case domain.ActionSell:
		pool = sellRationales(symbol)
		lowIdx, lowSuffix = 3, " (Risk management)"
		highIdx, highSuffix = 1, " (High conviction sell)"
	default:
		pool = holdRationales(symbol)
		lowIdx, lowSuffix = 2, " (Patient approach)"
		highIdx, highSuffix = 0, " (Waiting for optimal entry)"
	}

	switch risk {
	case domain.RiskLow:
		return pool[lowIdx] + lowSuffix
	case domain.RiskHigh:
		return pool[highIdx] + highSuffix
	}
	return pool[a.rnd.Intn(len(pool))]
}
