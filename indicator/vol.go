package indicator

import "math"

// PctChangeStd returns the sample standard deviation of one-bar percentage
// changes over the trailing window. Percentage changes are a differenced
// series, so window+1 prices are required before the indicator is ready.
func PctChangeStd(values []float64, window int) (float64, bool) {
	if window < 2 || len(values) < window+1 {
		return 0, false
	}
	rets := Returns(values)
	if len(rets) < window {
		return 0, false
	}
	return StdDev(rets[len(rets)-window:], 1)
}

// Returns converts a price series into one-bar percentage changes.
// A zero previous price yields a non-finite change that the std helpers
// reject downstream.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		out = append(out, values[i]/values[i-1]-1)
	}
	return out
}

// StdDev returns the standard deviation of values with the given delta
// degrees of freedom (0 = population, 1 = sample).
func StdDev(values []float64, ddof int) (float64, bool) {
	n := len(values)
	if n == 0 || n-ddof <= 0 {
		return 0, false
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return finite(math.Sqrt(ss / float64(n-ddof)))
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
