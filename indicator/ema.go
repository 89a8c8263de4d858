// Package indicator computes the technical indicators the strategies are
// built on. Every function returns (value, ok); ok is false until the
// series carries enough history for the requested window, and a NaN or
// infinite intermediate result is reported the same way. Callers never see
// a NaN.
package indicator

// EMA returns the exponential moving average of values using span-based
// smoothing (alpha = 2/(span+1)), seeded at the first observation and
// applied recursively over the whole series. Not ready until the series is
// at least span long.
func EMA(values []float64, span int) (float64, bool) {
	if span <= 0 || len(values) < span {
		return 0, false
	}
	alpha := 2.0 / float64(span+1)
	ema := values[0]
	for _, v := range values[1:] {
		ema = alpha*v + (1-alpha)*ema
	}
	return finite(ema)
}
