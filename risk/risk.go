package risk

// Fraction converts a risk budget into the equity fraction to deploy on a
// new entry. The target quantity risks riskPerTrade of equity against the
// stop distance; its notional is expressed as a fraction of equity, capped
// at maxPct and floored at minFrac so seed trades stay executable.
func Fraction(equity, price, stopDist, riskPerTrade, maxPct, minFrac float64) float64 {
	frac := minFrac
	if stopDist > 0 && price > 0 && equity > 0 {
		qty := equity * riskPerTrade / stopDist
		notional := qty * price
		frac = notional / equity
		if frac > 1 {
			frac = 1
		}
	}
	if frac > maxPct {
		frac = maxPct
	}
	if frac < minFrac {
		frac = minFrac
	}
	return frac
}
