package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketMapKeyConventions(t *testing.T) {
	cases := []struct {
		name string
		m    MarketMap
		want float64
	}{
		{"current_price", MarketMap{"current_price": 101.5}, 101.5},
		{"close", MarketMap{"close": 99.0}, 99},
		{"price", MarketMap{"price": 42.0}, 42},
		{"last", MarketMap{"last": 7.0}, 7},
		{"prices tail", MarketMap{"prices": []float64{1, 2, 3}}, 3},
		{"prices any tail", MarketMap{"prices": []any{1.0, 4.0}}, 4},
		{"int value", MarketMap{"close": 10}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := tc.m.LastPrice()
			require.True(t, ok)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestMarketMapDegradesGracefully(t *testing.T) {
	_, ok := MarketMap{}.LastPrice()
	assert.False(t, ok)
	_, ok = MarketMap{"close": "not-a-number"}.LastPrice()
	assert.False(t, ok)
	_, ok = MarketMap{"close": math.NaN()}.LastPrice()
	assert.False(t, ok, "NaN is treated as absence")
	_, ok = MarketMap{"prices": []float64{}}.LastPrice()
	assert.False(t, ok)
}

func TestMarketMapLastBar(t *testing.T) {
	m := MarketMap{
		"highs":  []float64{10, 12},
		"lows":   []float64{8, 9},
		"closes": []float64{9, 11},
	}
	bar, ok := m.LastBar()
	require.True(t, ok)
	assert.Equal(t, Bar{High: 12, Low: 9, Close: 11}, bar)

	_, ok = MarketMap{"highs": []float64{10}}.LastBar()
	assert.False(t, ok, "all three series are required")
}

func TestQuoteAndCandle(t *testing.T) {
	v, ok := Quote{Price: 5}.LastPrice()
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
	_, ok = Quote{Price: math.NaN()}.LastPrice()
	assert.False(t, ok)

	c := Candle{High: 3, Low: 1, Close: 2}
	bar, ok := c.LastBar()
	require.True(t, ok)
	assert.Equal(t, Bar{High: 3, Low: 1, Close: 2}, bar)
}

func TestPortfolioMapConventions(t *testing.T) {
	p := PortfolioMap{"qty": -2.0, "avg_price": 55.0, "balance": 1_000.0}
	assert.Equal(t, -2.0, p.Quantity())
	avg, ok := p.AvgEntryPrice()
	require.True(t, ok)
	assert.Equal(t, 55.0, avg)
	cash, ok := p.Cash()
	require.True(t, ok)
	assert.Equal(t, 1_000.0, cash)
}

func TestPortfolioMapEquityKeys(t *testing.T) {
	p := PortfolioMap{"equity": 11_000.0, "qty": 5.0}
	eq, ok := p.EquityValue()
	require.True(t, ok)
	assert.Equal(t, 11_000.0, eq)
	_, ok = p.Cash()
	assert.False(t, ok, "total account value is not free cash")

	eq, ok = PortfolioMap{"portfolio_value": 9_500.0}.EquityValue()
	require.True(t, ok)
	assert.Equal(t, 9_500.0, eq)

	_, ok = PortfolioMap{"cash": 100.0}.EquityValue()
	assert.False(t, ok)
}

func TestPortfolioMapFallbacks(t *testing.T) {
	p := PortfolioMap{"quantity": "garbage"}
	assert.Equal(t, 0.0, p.Quantity(), "malformed quantity degrades to flat")
	_, ok := p.AvgEntryPrice()
	assert.False(t, ok)
	_, ok = p.Cash()
	assert.False(t, ok)
}

func TestIsClosingReason(t *testing.T) {
	for _, r := range []string{ReasonTPHit, ReasonSLHit, ReasonTPHitShort, ReasonSLHitShort, ReasonTimeExit} {
		assert.True(t, IsClosingReason(r), r)
	}
	assert.False(t, IsClosingReason(ReasonManage))
	assert.False(t, IsClosingReason(""))
	assert.False(t, IsClosingReason(ReasonTrendPullbackLong))
}
