package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gostrat/types"
)

// recordingHook captures post-trade calls for assertions.
type recordingHook struct {
	sigs  []types.Signal
	sizes []float64
}

func (r *recordingHook) OnTrade(sig types.Signal, _ float64, execSize float64, _ time.Time) {
	r.sigs = append(r.sigs, sig)
	r.sizes = append(r.sizes, execSize)
}

func TestPaperEntryFill(t *testing.T) {
	p := NewPaper(10_000)
	hook := &recordingHook{}

	sig := types.Signal{Action: types.Buy, Size: 0.5, Reason: types.ReasonTrendPullbackLong}
	p.Execute(hook, sig, 100, time.Now())

	assert.Equal(t, 50.0, p.Quantity())
	avg, ok := p.AvgEntryPrice()
	require.True(t, ok)
	assert.Equal(t, 100.0, avg)
	cash, _ := p.Cash()
	assert.Equal(t, 5_000.0, cash)

	require.Len(t, hook.sizes, 1)
	assert.Equal(t, 50.0, hook.sizes[0], "buys confirm with positive size")
}

func TestPaperClosingReasonFlattens(t *testing.T) {
	p := NewPaper(10_000)
	hook := &recordingHook{}
	p.Execute(hook, types.Signal{Action: types.Buy, Size: 0.5, Reason: types.ReasonTrendPullbackLong}, 100, time.Now())

	// exit signal carries size 1.0 but must close exactly the open quantity
	p.Execute(hook, types.Signal{Action: types.Sell, Size: 1, Reason: types.ReasonTPHit}, 110, time.Now())

	assert.Equal(t, 0.0, p.Quantity())
	_, ok := p.AvgEntryPrice()
	assert.False(t, ok, "flat account reports no entry price")
	cash, _ := p.Cash()
	assert.Equal(t, 10_500.0, cash)

	require.Len(t, hook.sizes, 2)
	assert.Equal(t, -50.0, hook.sizes[1], "sells confirm with negative size")
	assert.Equal(t, types.ReasonTPHit, hook.sigs[1].Reason)
}

func TestPaperShortSide(t *testing.T) {
	p := NewPaper(10_000)
	p.Execute(nil, types.Signal{Action: types.Sell, Size: 0.25, Reason: types.ReasonTrendPullbackShort}, 200, time.Now())

	assert.Equal(t, -12.5, p.Quantity())
	avg, ok := p.AvgEntryPrice()
	require.True(t, ok)
	assert.Equal(t, 200.0, avg)
}

func TestPaperIgnoresHoldsAndBadInput(t *testing.T) {
	p := NewPaper(10_000)
	p.Execute(nil, types.HoldSignal(types.ReasonManage), 100, time.Now())
	p.Execute(nil, types.Signal{Action: types.Buy, Size: 0}, 100, time.Now())
	p.Execute(nil, types.Signal{Action: types.Buy, Size: 0.5}, 0, time.Now())

	assert.Empty(t, p.Fills())
	assert.Equal(t, 0.0, p.Quantity())
}

func TestPaperAveragesScaleIns(t *testing.T) {
	p := NewPaper(10_000)
	p.Execute(nil, types.Signal{Action: types.Buy, Size: 0.5, Reason: types.ReasonTrendPullbackLong}, 100, time.Now())
	// equity at 120 is 5000 + 50*120 = 11000; 25% deploys 2750 => 22.9166 units
	p.Execute(nil, types.Signal{Action: types.Buy, Size: 0.25, Reason: types.ReasonSeedMeanRevLong}, 120, time.Now())

	require.Len(t, p.Fills(), 2)
	avg, ok := p.AvgEntryPrice()
	require.True(t, ok)
	assert.Greater(t, avg, 100.0)
	assert.Less(t, avg, 120.0)
}
