package types

import "math"

// Market is the read-only view of the current bar handed to a strategy.
// Host frameworks expose market data under several shapes; those are
// adapted to this contract once at the boundary instead of being probed
// at every call site.
type Market interface {
	// LastPrice returns the most recent trade/close price. ok is false
	// when no valid numeric price is available.
	LastPrice() (price float64, ok bool)
	// LastBar returns the high/low/close of the current bar when the
	// feed carries them. ok is false for price-only feeds; callers fall
	// back to LastPrice for all three fields.
	LastBar() (bar Bar, ok bool)
}

// Portfolio is the read-only position view owned by the host. Quantity is
// signed: positive long, negative short, zero flat.
type Portfolio interface {
	Quantity() float64
	// AvgEntryPrice returns the average fill price of the open position,
	// ok=false when the host does not track it.
	AvgEntryPrice() (price float64, ok bool)
	// Cash returns free cash, excluding the value of any open position,
	// ok=false when unknown.
	Cash() (cash float64, ok bool)
}

// EquityReporter is implemented by portfolio views whose host reports
// total account value instead of free cash. Valuation uses it directly,
// never adding the open position on top of it.
type EquityReporter interface {
	EquityValue() (value float64, ok bool)
}

// Candle is the plain-struct Market adapter used by hosts that deliver
// full OHLC bars.
type Candle struct {
	High  float64
	Low   float64
	Close float64
}

func (c Candle) LastPrice() (float64, bool) {
	if math.IsNaN(c.Close) {
		return 0, false
	}
	return c.Close, true
}

func (c Candle) LastBar() (Bar, bool) {
	if math.IsNaN(c.High) || math.IsNaN(c.Low) || math.IsNaN(c.Close) {
		return Bar{}, false
	}
	return Bar{High: c.High, Low: c.Low, Close: c.Close}, true
}

// Quote is the Market adapter for price-only feeds.
type Quote struct {
	Price float64
}

func (q Quote) LastPrice() (float64, bool) {
	if math.IsNaN(q.Price) {
		return 0, false
	}
	return q.Price, true
}

func (q Quote) LastBar() (Bar, bool) { return Bar{}, false }

// MarketMap adapts the loosely-typed map payloads some bot runners hand
// out. All historical key conventions are resolved here, once.
type MarketMap map[string]any

func (m MarketMap) LastPrice() (float64, bool) {
	for _, k := range []string{"current_price", "close", "price", "last"} {
		if v, ok := asFloat(m[k]); ok {
			return v, true
		}
	}
	if v, ok := lastOf(m["prices"]); ok {
		return v, true
	}
	return 0, false
}

func (m MarketMap) LastBar() (Bar, bool) {
	h, hok := lastOf(m["highs"])
	l, lok := lastOf(m["lows"])
	c, cok := lastOf(m["closes"])
	if !hok || !lok || !cok {
		return Bar{}, false
	}
	return Bar{High: h, Low: l, Close: c}, true
}

// Account is the plain-struct Portfolio adapter.
type Account struct {
	CashBalance float64
	Qty         float64
	AvgEntry    float64 // 0 = untracked
}

func (a Account) Quantity() float64 { return a.Qty }

func (a Account) AvgEntryPrice() (float64, bool) {
	if a.AvgEntry == 0 {
		return 0, false
	}
	return a.AvgEntry, true
}

func (a Account) Cash() (float64, bool) { return a.CashBalance, true }

// PortfolioMap adapts map-shaped portfolio payloads. Unknown or malformed
// fields degrade to zero quantity / unknown cash rather than failing.
type PortfolioMap map[string]any

func (p PortfolioMap) Quantity() float64 {
	for _, k := range []string{"quantity", "qty", "position_size"} {
		if v, ok := asFloat(p[k]); ok {
			return v
		}
	}
	return 0
}

func (p PortfolioMap) AvgEntryPrice() (float64, bool) {
	for _, k := range []string{"avg_entry_price", "avg_price", "entry_price"} {
		if v, ok := asFloat(p[k]); ok {
			return v, true
		}
	}
	return 0, false
}

func (p PortfolioMap) Cash() (float64, bool) {
	for _, k := range []string{"cash", "balance"} {
		if v, ok := asFloat(p[k]); ok {
			return v, true
		}
	}
	return 0, false
}

// EquityValue resolves the keys that carry total account value. Hosts
// using these already include the open position, so they must not flow
// through Cash.
func (p PortfolioMap) EquityValue() (float64, bool) {
	for _, k := range []string{"equity", "portfolio_value"} {
		if v, ok := asFloat(p[k]); ok {
			return v, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func lastOf(v any) (float64, bool) {
	switch xs := v.(type) {
	case []float64:
		if len(xs) == 0 {
			return 0, false
		}
		return asFloat(xs[len(xs)-1])
	case []any:
		if len(xs) == 0 {
			return 0, false
		}
		return asFloat(xs[len(xs)-1])
	}
	return 0, false
}
