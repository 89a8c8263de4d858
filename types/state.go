package types

// MaxStateBars bounds every persisted price series. In-memory history is
// capped to the same length; the indicator windows are far shorter, so the
// cap never changes a decision.
const MaxStateBars = 5000

// State is the opaque checkpoint a host persists between runs via the
// get/set-state calls. It round-trips through JSON unchanged; no
// concurrent-access guarantees are made.
type State struct {
	History []float64 `json:"history,omitempty"`
	Highs   []float64 `json:"highs,omitempty"`
	Lows    []float64 `json:"lows,omitempty"`
	Closes  []float64 `json:"closes,omitempty"`

	EntryPrice *float64 `json:"entry_price,omitempty"`
	Side       string   `json:"side,omitempty"` // used by strategies that self-track position side
	BarsHeld   int      `json:"bars_held"`
	Cooldown   int      `json:"cooldown"`
	TradeCount int      `json:"trade_count"`
}
