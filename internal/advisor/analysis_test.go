package advisor

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/papertrade/papertrade/internal/catalog"
	"github.com/papertrade/papertrade/internal/domain"
)

// fillHistory pushes n quotes for symbol with a repeating up/down price shape.
func fillHistory(t *testing.T, c *catalog.Catalog, symbol string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		price := decimal.NewFromInt(int64(100 + i%10))
		require.NoError(t, c.SetQuote(symbol, price, decimal.Zero, decimal.Zero))
	}
}

func TestAnalyze_SnapshotWithinBounds(t *testing.T) {
	c := universe(t)
	fillHistory(t, c, "RELIANCE", 60)
	a, err := New(c, rand.New(rand.NewSource(11)), zap.NewNop())
	require.NoError(t, err)

	snap, err := a.Analyze("RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", snap.Symbol)

	rsi, _ := snap.RSI.Float64()
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)

	bollinger, _ := snap.Bollinger.Float64()
	assert.GreaterOrEqual(t, bollinger, 0.0)
	assert.LessOrEqual(t, bollinger, 1.0)

	relVol, _ := snap.RelativeVolume.Float64()
	assert.GreaterOrEqual(t, relVol, 0.5)
	assert.LessOrEqual(t, relVol, 2.0)

	assert.Contains(t, []domain.TrendDirection{
		domain.TrendBullish, domain.TrendBearish, domain.TrendSideways,
	}, snap.Trend)
}

func TestAnalyze_RisingPricesAreBullish(t *testing.T) {
	c := universe(t)
	for i := 0; i < 60; i++ {
		price := decimal.NewFromInt(int64(3400 + 5*i))
		require.NoError(t, c.SetQuote("TCS", price, decimal.Zero, decimal.Zero))
	}
	a, err := New(c, rand.New(rand.NewSource(11)), zap.NewNop())
	require.NoError(t, err)

	snap, err := a.Analyze("TCS")
	require.NoError(t, err)
	assert.Equal(t, domain.TrendBullish, snap.Trend)
}

func TestAnalyze_ShortHistory(t *testing.T) {
	a := newAdvisor(t, rand.New(rand.NewSource(11)))

	_, err := a.Analyze("RELIANCE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEnoughHistory))
}

func TestAnalyze_UnknownSymbol(t *testing.T) {
	a := newAdvisor(t, rand.New(rand.NewSource(11)))

	_, err := a.Analyze("ZZZZ")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotEnoughHistory))
}

func TestSentiment_Classification(t *testing.T) {
	cases := []struct {
		name   string
		floats []float64
		want   domain.SentimentLabel
	}{
		{"positive", []float64{0.95, 0.95}, domain.SentimentPositive},
		{"negative", []float64{0.05, 0.05}, domain.SentimentNegative},
		{"neutral", []float64{0.5, 0.6}, domain.SentimentNeutral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newAdvisor(t, &scriptedRand{floats: tc.floats, ints: []int{0}})

			report := a.Sentiment("TCS")
			assert.Equal(t, "TCS", report.Symbol)
			assert.Equal(t, tc.want, report.Overall)
			assert.GreaterOrEqual(t, report.News, -1.0)
			assert.LessOrEqual(t, report.News, 1.0)
			assert.GreaterOrEqual(t, report.Social, -1.0)
			assert.LessOrEqual(t, report.Social, 1.0)
		})
	}
}

func TestAssessRisk_Buckets(t *testing.T) {
	cases := []struct {
		name   string
		floats []float64 // volatility draw, liquidity draw
		want   domain.RiskLevel
	}{
		{"low", []float64{0.1, 0.9}, domain.RiskLow},
		{"high volatility", []float64{0.9, 0.5}, domain.RiskHigh},
		{"low liquidity", []float64{0.5, 0.1}, domain.RiskHigh},
		{"medium", []float64{0.5, 0.5}, domain.RiskMedium},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newAdvisor(t, &scriptedRand{floats: tc.floats, ints: []int{0}})

			got, err := a.AssessRisk("TCS", domain.SideBuy)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Risk)
			assert.NotEmpty(t, got.Recommendation)
		})
	}
}

func TestAssessRisk_VolatilityFromHistory(t *testing.T) {
	c := universe(t)
	// alternating +-10% moves give a percent-return stddev far above the scale
	for i := 0; i < 20; i++ {
		price := decimal.NewFromInt(100)
		if i%2 == 1 {
			price = decimal.NewFromInt(110)
		}
		require.NoError(t, c.SetQuote("SBIN", price, decimal.Zero, decimal.Zero))
	}
	a, err := New(c, &scriptedRand{floats: []float64{0.0, 0.9}, ints: []int{0}}, zap.NewNop())
	require.NoError(t, err)

	got, err := a.AssessRisk("SBIN", domain.SideSell)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Volatility, 1e-9, "volatility should be clamped to 1")
	assert.Equal(t, domain.RiskHigh, got.Risk)
}

func TestAssessRisk_UnknownSymbol(t *testing.T) {
	a := newAdvisor(t, rand.New(rand.NewSource(11)))

	_, err := a.AssessRisk("ZZZZ", domain.SideBuy)
	require.Error(t, err)
}
