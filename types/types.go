package types

// Action is the trade decision carried by a Signal.
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
	Hold Action = "hold"
)

// Reason codes attached to signals. Exit classification in the post-trade
// hook keys off these exact strings, so they are part of the host contract.
const (
	ReasonNoPrice    = "no_price"
	ReasonWarmingUp  = "warming_up"
	ReasonWarmingInd = "warming_ind"
	ReasonCooldown   = "cooldown"
	ReasonManage     = "manage"
	ReasonNoEntry    = "no_entry"

	ReasonTPHit      = "tp_hit"
	ReasonSLHit      = "sl_hit"
	ReasonTPHitShort = "tp_hit_short"
	ReasonSLHitShort = "sl_hit_short"
	ReasonTimeExit   = "time_exit"

	ReasonTrendPullbackLong  = "trend_pullback_long"
	ReasonTrendPullbackShort = "trend_pullback_short"
	ReasonSeedMeanRevLong    = "seed_meanrev_long"
	ReasonSeedMeanRevShort   = "seed_meanrev_short"
	ReasonSeedMinTradesLong  = "seed_min_trades_long"
	ReasonSeedMinTradesShort = "seed_min_trades_short"

	ReasonTrendVolExpLong  = "trend_volexp_long"
	ReasonTrendVolExpShort = "trend_volexp_short"
)

// closingReasons is the authoritative set of reason codes that mark a
// position exit. The post-trade hook treats the reason as the sole close
// trigger; the sign of the fill is not consulted.
var closingReasons = map[string]struct{}{
	ReasonTPHit:      {},
	ReasonSLHit:      {},
	ReasonTPHitShort: {},
	ReasonSLHitShort: {},
	ReasonTimeExit:   {},
}

// IsClosingReason reports whether the reason code marks a position exit.
func IsClosingReason(reason string) bool {
	_, ok := closingReasons[reason]
	return ok
}

// Signal is the per-bar decision emitted by a strategy. It is a proposal:
// the host executes it (or not) and reports the outcome through the
// post-trade hook. A Signal is immutable once returned.
type Signal struct {
	ID     string  `json:"id,omitempty"`
	Action Action  `json:"action"`
	Size   float64 `json:"size,omitempty"` // fraction of equity; 1.0 on exits = full position
	Reason string  `json:"reason"`

	// Price levels, zero when not applicable.
	TargetPrice float64 `json:"target_price,omitempty"`
	StopLoss    float64 `json:"stop_loss,omitempty"`
	EntryPrice  float64 `json:"entry_price,omitempty"`
}

// HoldSignal is the canonical "do nothing" decision.
func HoldSignal(reason string) Signal {
	return Signal{Action: Hold, Reason: reason}
}

// Bar is a single high/low/close observation.
type Bar struct {
	High  float64
	Low   float64
	Close float64
}
