package advisor

import (
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/domain"
)

// ErrNotEnoughHistory the simulated price history is too short for indicators.
var ErrNotEnoughHistory = errors.New("not enough price history")

const (
	// minAnalysisPoints covers the EMA50 warmup, the longest indicator used.
	minAnalysisPoints = 50
	bollingerPeriod   = 20
	rsiPeriod         = 14

	// trendBandWidth dead zone around EMA parity before calling a trend.
	trendBandWidth = 0.002

	sentimentThreshold = 0.2

	// volatility of percent returns above this maps to 1.0.
	volatilityScalePercent = 5
	minReturnPoints        = 8
)

// Analyze computes a technical snapshot for symbol from its simulated price
// history. RSI, MACD and the EMA trend come from the indicator library;
// the Bollinger position is derived from a 20-period mean and stddev.
func (a *Advisor) Analyze(symbol string) (domain.TechnicalSnapshot, error) {
	if _, ok := a.catalog.Get(symbol); !ok {
		return domain.TechnicalSnapshot{}, errors.Errorf("unknown instrument %q", symbol)
	}

	history := a.catalog.History(symbol, minAnalysisPoints*2)
	if len(history) < minAnalysisPoints {
		return domain.TechnicalSnapshot{}, errors.Wrapf(ErrNotEnoughHistory,
			"%s has %d points, need %d", symbol, len(history), minAnalysisPoints)
	}

	closes := make([]float64, len(history))
	for i, p := range history {
		closes[i], _ = p.Float64()
	}

	rsi := lastOf(momentum.NewRsiWithPeriod[float64](rsiPeriod).Compute(helper.SliceToChan(closes)))

	macdChan, signalChan := trend.NewMacd[float64]().Compute(helper.SliceToChan(closes))
	go func() {
		for range signalChan {
		}
	}()
	macd := lastOf(macdChan)

	ema20 := lastOf(trend.NewEmaWithPeriod[float64](20).Compute(helper.SliceToChan(closes)))
	ema50 := lastOf(trend.NewEmaWithPeriod[float64](50).Compute(helper.SliceToChan(closes)))

	direction := domain.TrendSideways
	switch {
	case ema20 > ema50*(1+trendBandWidth):
		direction = domain.TrendBullish
	case ema20 < ema50*(1-trendBandWidth):
		direction = domain.TrendBearish
	}

	bollinger := bollingerPosition(closes)

	// volume history is not simulated per tick, so the relative volume is a
	// draw in the 0.5-2.0 band around the baseline.
	relativeVolume := 0.5 + a.rnd.Float64()*1.5

	snapshot := domain.TechnicalSnapshot{
		Symbol:         symbol,
		RSI:            decimal.NewFromFloat(rsi),
		MACD:           decimal.NewFromFloat(macd),
		Bollinger:      decimal.NewFromFloat(bollinger),
		RelativeVolume: decimal.NewFromFloat(relativeVolume),
		Trend:          direction,
	}

	a.logger.Debug("technical snapshot computed",
		zap.String("symbol", symbol),
		zap.Float64("rsi", rsi),
		zap.String("trend", string(direction)))

	return snapshot, nil
}

// Sentiment simulates news and social sentiment scores in [-1, 1] and
// classifies their average at a +-0.2 threshold.
func (a *Advisor) Sentiment(symbol string) domain.SentimentReport {
	news := a.rnd.Float64()*2 - 1
	social := a.rnd.Float64()*2 - 1
	avg := (news + social) / 2

	overall := domain.SentimentNeutral
	switch {
	case avg > sentimentThreshold:
		overall = domain.SentimentPositive
	case avg < -sentimentThreshold:
		overall = domain.SentimentNegative
	}

	return domain.SentimentReport{Symbol: symbol, News: news, Social: social, Overall: overall}
}

// AssessRisk estimates a coarse risk bucket for trading symbol. Volatility is
// the stddev of recent percent returns normalized to [0, 1], falling back to a
// random draw when the history is too short; liquidity is always simulated.
func (a *Advisor) AssessRisk(symbol string, side domain.Side) (domain.RiskAssessment, error) {
	if _, ok := a.catalog.Get(symbol); !ok {
		return domain.RiskAssessment{}, errors.Errorf("unknown instrument %q", symbol)
	}

	volatility := a.rnd.Float64()
	if returns := percentReturns(a.catalog.History(symbol, 32)); len(returns) >= minReturnPoints {
		if sd, err := stats.StandardDeviation(returns); err == nil {
			volatility = math.Min(sd/volatilityScalePercent, 1)
		}
	}
	liquidity := a.rnd.Float64()

	var risk domain.RiskLevel
	switch {
	case volatility < 0.3 && liquidity > 0.7:
		risk = domain.RiskLow
	case volatility > 0.7 || liquidity < 0.3:
		risk = domain.RiskHigh
	default:
		risk = domain.RiskMedium
	}

	recommendations := map[domain.RiskLevel]string{
		domain.RiskLow:    "Safe investment with stable returns expected",
		domain.RiskMedium: "Moderate risk with potential for good returns",
		domain.RiskHigh:   "High risk, high reward opportunity - monitor closely",
	}

	a.logger.Debug("risk assessed",
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.String("risk", string(risk)))

	return domain.RiskAssessment{
		Symbol:         symbol,
		Risk:           risk,
		Volatility:     volatility,
		Liquidity:      liquidity,
		Recommendation: recommendations[risk],
	}, nil
}

func lastOf(ch <-chan float64) float64 {
	vals := helper.ChanToSlice(ch)
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}

func bollingerPosition(closes []float64) float64 {
	window := closes
	if len(window) > bollingerPeriod {
		window = window[len(window)-bollingerPeriod:]
	}

	mean, err := stats.Mean(window)
	if err != nil {
		return 0.5
	}
	sd, err := stats.StandardDeviation(window)
	if err != nil || sd == 0 {
		return 0.5
	}

	lower := mean - 2*sd
	upper := mean + 2*sd
	pos := (closes[len(closes)-1] - lower) / (upper - lower)
	return math.Max(0, math.Min(1, pos))
}

func percentReturns(history []decimal.Decimal) []float64 {
	if len(history) < 2 {
		return nil
	}
	out := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		prev, _ := history[i-1].Float64()
		cur, _ := history[i].Float64()
		if prev == 0 {
			continue
		}
		out = append(out, (cur-prev)/prev*100)
	}
	return out
}
