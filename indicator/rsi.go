package indicator

// RSI returns the Relative Strength Index over the trailing window: the
// ratio of the average gain to the average loss across the last window
// one-bar differences, mapped onto 0-100. Differencing costs one bar, so
// window+1 values are required. A zero average loss would push RSI to its
// asymptote, which is reported as not ready rather than a fabricated 100.
func RSI(values []float64, window int) (float64, bool) {
	if window <= 0 || len(values) < window+1 {
		return 0, false
	}
	tail := values[len(values)-window-1:]
	var gains, losses float64
	for i := 1; i < len(tail); i++ {
		d := tail[i] - tail[i-1]
		if d > 0 {
			gains += d
		} else {
			losses -= d
		}
	}
	avgGain := gains / float64(window)
	avgLoss := losses / float64(window)
	if avgLoss == 0 {
		return 0, false
	}
	rs := avgGain / avgLoss
	return finite(100 - 100/(1+rs))
}
