package domain

import "github.com/shopspring/decimal"

// TrendDirection overall price direction inferred from moving averages.
type TrendDirection string

const (
	TrendBullish  TrendDirection = "BULLISH"
	TrendBearish  TrendDirection = "BEARISH"
	TrendSideways TrendDirection = "SIDEWAYS"
)

// TechnicalSnapshot holds indicator values computed from the simulated
// price history of a single instrument.
type TechnicalSnapshot struct {
	Symbol string `json:"symbol"`
	// RSI 14-period Relative Strength Index, 0-100.
	RSI decimal.Decimal `json:"rsi"`
	// MACD latest MACD line value.
	MACD decimal.Decimal `json:"macd"`
	// Bollinger position of the last price within the bands, 0-1.
	Bollinger decimal.Decimal `json:"bollinger"`
	// RelativeVolume current volume relative to a recent baseline.
	RelativeVolume decimal.Decimal `json:"relativeVolume"`
	Trend          TrendDirection  `json:"trend"`
}

// SentimentLabel aggregate sentiment classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// SentimentReport simulated news and social sentiment, each in [-1, 1].
type SentimentReport struct {
	Symbol  string         `json:"symbol"`
	News    float64        `json:"news"`
	Social  float64        `json:"social"`
	Overall SentimentLabel `json:"overall"`
}

// RiskAssessment coarse risk evaluation for an order.
type RiskAssessment struct {
	Symbol string    `json:"symbol"`
	Risk   RiskLevel `json:"risk"`
	// Volatility normalized to [0, 1].
	Volatility float64 `json:"volatility"`
	// Liquidity normalized to [0, 1].
	Liquidity      float64 `json:"liquidity"`
	Recommendation string  `json:"recommendation"`
}
