package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/testutils"
	"github.com/evdnx/gostrat/types"
)

// candle is a single bar the tests feed to a strategy.
type candle struct {
	high, low, close float64
}

func (c candle) market() types.Market {
	return types.Candle{High: c.high, Low: c.low, Close: c.close}
}

// buildHybrid wires a HybridEMAPullback to the default config and a
// recording logger.
func buildHybrid(t *testing.T) *HybridEMAPullback {
	t.Helper()
	h, err := NewHybridEMAPullback(config.Default(), testutils.NewMockLogger())
	require.NoError(t, err)
	return h
}

// buildEMAVol wires an EMAVolatility to the default config.
func buildEMAVol(t *testing.T) *EMAVolatility {
	t.Helper()
	e, err := NewEMAVolatility(config.Default(), testutils.NewMockLogger())
	require.NoError(t, err)
	return e
}

// feedBars runs the candles through the strategy with a flat (nil)
// portfolio and returns every emitted signal.
func feedBars(s Strategy, bars []candle) []types.Signal {
	out := make([]types.Signal, 0, len(bars))
	for _, b := range bars {
		out = append(out, s.GenerateSignal(b.market(), nil))
	}
	return out
}

// risingWiggly produces an uptrend with a small dip every fourth bar so
// difference-based indicators (RSI) see both gains and losses while the
// volatility regime stays steady.
func risingWiggly(n int) []candle {
	bars := make([]candle, 0, n)
	for i := 0; i < n; i++ {
		price := 100 + 0.3*float64(i)
		if i%4 == 3 {
			price -= 0.5
		}
		bars = append(bars, candle{high: price + 0.5, low: price - 0.5, close: price})
	}
	return bars
}

// fallingWiggly mirrors risingWiggly for downtrends.
func fallingWiggly(n int) []candle {
	bars := make([]candle, 0, n)
	for i := 0; i < n; i++ {
		price := 200 - 0.3*float64(i)
		if i%4 == 3 {
			price += 0.2
		}
		bars = append(bars, candle{high: price + 0.5, low: price - 0.5, close: price})
	}
	return bars
}

// calmThenChop rides a gentle uptrend into a volatile two-sided chop with
// a mild downward drift: recent realized volatility blows out against the
// longer historical window while the EMA trend filter stays long, and the
// down legs pull price below the fast EMA.
func calmThenChop(calm, chop int) []candle {
	bars := make([]candle, 0, calm+chop)
	price := 100.0
	for i := 0; i < calm; i++ {
		price += 0.05
		bars = append(bars, candle{high: price + 0.1, low: price - 0.1, close: price})
	}
	for i := 0; i < chop; i++ {
		if i%2 == 0 {
			price *= 0.994
		} else {
			price *= 1.003
		}
		bars = append(bars, candle{high: price + 0.3, low: price - 0.3, close: price})
	}
	return bars
}

// calmThenChopUp mirrors calmThenChop: a gentle downtrend into a chop with
// upward bounces, for the short side.
func calmThenChopUp(calm, chop int) []candle {
	bars := make([]candle, 0, calm+chop)
	price := 110.0
	for i := 0; i < calm; i++ {
		price -= 0.05
		bars = append(bars, candle{high: price + 0.1, low: price - 0.1, close: price})
	}
	for i := 0; i < chop; i++ {
		if i%2 == 0 {
			price *= 1.006
		} else {
			price *= 0.997
		}
		bars = append(bars, candle{high: price + 0.3, low: price - 0.3, close: price})
	}
	return bars
}

// sameDecision strips the per-emission id and compares the decision
// payloads.
func sameDecision(t *testing.T, want, got types.Signal) {
	t.Helper()
	want.ID, got.ID = "", ""
	require.Equal(t, want, got)
}
