package indicator

import "math"

// ATR returns the Average True Range: the mean of the per-bar true range
// over the last window bars (fewer while the series is still shorter than
// the window). True range needs the previous close, so at least two bars
// are required. The first bar's true range degrades to high-low.
func ATR(highs, lows, closes []float64, window int) (float64, bool) {
	n := len(highs)
	if len(lows) < n {
		n = len(lows)
	}
	if len(closes) < n {
		n = len(closes)
	}
	if window <= 0 || n < 2 {
		return 0, false
	}

	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	if window < n {
		tr = tr[n-window:]
	}
	return finite(Mean(tr))
}
