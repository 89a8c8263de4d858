package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMANotReadyBelowSpan(t *testing.T) {
	_, ok := EMA([]float64{100}, 2)
	assert.False(t, ok)
	_, ok = EMA(nil, 3)
	assert.False(t, ok)
	_, ok = EMA([]float64{1, 2, 3}, 0)
	assert.False(t, ok)
}

func TestEMAValue(t *testing.T) {
	// span 2 => alpha 2/3, seeded at the first value:
	// 1 -> 5/3 -> 23/9
	v, ok := EMA([]float64{1, 2, 3}, 2)
	require.True(t, ok)
	assert.InDelta(t, 23.0/9.0, v, 1e-12)
}

func TestPctChangeStdRequiresWindowPlusOne(t *testing.T) {
	_, ok := PctChangeStd([]float64{100, 110}, 2)
	assert.False(t, ok, "2 prices give only 1 return, window 2 needs 2")

	v, ok := PctChangeStd([]float64{100, 110, 99}, 2)
	require.True(t, ok)
	// returns {0.1, -0.1}, sample std = sqrt(0.02)
	assert.InDelta(t, math.Sqrt(0.02), v, 1e-12)
}

func TestPctChangeStdRejectsNonFinite(t *testing.T) {
	// zero price yields an infinite percentage change
	_, ok := PctChangeStd([]float64{100, 0, 50}, 2)
	assert.False(t, ok)
}

func TestRSIValue(t *testing.T) {
	// deltas over window 3: +1, -1, +2 => avg gain 1, avg loss 1/3, RS 3
	v, ok := RSI([]float64{100, 101, 100, 102}, 3)
	require.True(t, ok)
	assert.InDelta(t, 75.0, v, 1e-12)
}

func TestRSINotReady(t *testing.T) {
	_, ok := RSI([]float64{100, 101, 102}, 3)
	assert.False(t, ok, "window 3 needs 4 prices")

	// a loss-free series would push RSI to its asymptote
	_, ok = RSI([]float64{1, 2, 3, 4}, 3)
	assert.False(t, ok)
}

func TestATRValue(t *testing.T) {
	highs := []float64{10, 12}
	lows := []float64{8, 9}
	closes := []float64{9, 11}
	// TR: {2, max(3, 3, 0)} => mean 2.5 while shorter than the window
	v, ok := ATR(highs, lows, closes, 14)
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-12)

	// window 1 keeps only the latest true range
	v, ok = ATR(highs, lows, closes, 1)
	require.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-12)
}

func TestATRNotReadyBelowTwoBars(t *testing.T) {
	_, ok := ATR([]float64{10}, []float64{8}, []float64{9}, 14)
	assert.False(t, ok)
}

func TestStdDevDegreesOfFreedom(t *testing.T) {
	vals := []float64{1, 2, 3, 4}
	pop, ok := StdDev(vals, 0)
	require.True(t, ok)
	smp, ok2 := StdDev(vals, 1)
	require.True(t, ok2)
	assert.InDelta(t, math.Sqrt(1.25), pop, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), smp, 1e-12)

	_, ok = StdDev([]float64{1}, 1)
	assert.False(t, ok, "sample std of one value is undefined")
}

func TestReturns(t *testing.T) {
	rets := Returns([]float64{100, 110, 99})
	require.Len(t, rets, 2)
	assert.InDelta(t, 0.1, rets[0], 1e-12)
	assert.InDelta(t, -0.1, rets[1], 1e-12)
	assert.Nil(t, Returns([]float64{100}))
}
