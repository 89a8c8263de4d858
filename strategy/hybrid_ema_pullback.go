package strategy

import (
	"time"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/indicator"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/metrics"
	"github.com/evdnx/gostrat/risk"
	"github.com/evdnx/gostrat/types"
)

// zScoreSeedThreshold gates the mean-reversion seed entries: the current
// price must sit more than this many (population) standard deviations away
// from the recent mean.
const zScoreSeedThreshold = 1.5

// HybridEMAPullback combines an EMA trend filter, pullback entries
// confirmed by RSI, a volatility-regime gate, and ATR-scaled exits.
//
// Commit model: GenerateSignal never mutates confirmed position state.
// Entry price, trade count, and the cleared-position transitions are
// committed exclusively in OnTrade after the host reports a fill; the
// portfolio snapshot stays the source of truth for the live side/quantity.
// Seeding trades keep activity above a floor while the confirmed trade
// count is still below its target.
type HybridEMAPullback struct {
	baseStrategy
	cfg          config.HybridConfig
	startingCash float64

	history *series // closes as seen via LastPrice
	highs   *series
	lows    *series
	closes  *series

	// position knowledge derived from confirmed fills only
	entryPrice *float64
	barsHeld   int
	cooldown   int
	tradeCount int
}

// NewHybridEMAPullback validates the config and returns a fresh instance.
func NewHybridEMAPullback(cfg config.Config, log logger.Logger) (*HybridEMAPullback, error) {
	hc := cfg.Hybrid
	if err := hc.Validate(); err != nil {
		return nil, err
	}
	return &HybridEMAPullback{
		baseStrategy: newBase("hybrid_ema_pullback", log),
		cfg:          hc,
		startingCash: cfg.StartingCash,
		history:      newSeries(),
		highs:        newSeries(),
		lows:         newSeries(),
		closes:       newSeries(),
	}, nil
}

func init() {
	Register("hybrid_ema_pullback", func(cfg config.Config, log logger.Logger) (Strategy, error) {
		return NewHybridEMAPullback(cfg, log)
	})
}

// GenerateSignal evaluates one bar. See the package doc for the call
// contract; the only state touched here is the history caches, the
// bars-held counter while a position is open, and the cooldown countdown.
func (h *HybridEMAPullback) GenerateSignal(mkt types.Market, pf types.Portfolio) types.Signal {
	price, ok := lastPrice(mkt)
	if !ok {
		return h.hold(types.ReasonNoPrice)
	}
	h.appendBar(mkt, price)

	if h.history.Len() < h.warmupBars() {
		return h.hold(types.ReasonWarmingUp)
	}

	hist := h.history.values()
	fastEMA, fastOK := indicator.EMA(hist, h.cfg.ShortWindow)
	slowEMA, slowOK := indicator.EMA(hist, h.cfg.LongWindow)
	realizedVol, rvOK := indicator.PctChangeStd(hist, h.cfg.VolWindow)
	histVol, hvOK := indicator.PctChangeStd(hist, h.cfg.HistVolWindow)
	rsi, rsiOK := indicator.RSI(hist, h.cfg.RSIWindow)
	atr, atrOK := indicator.ATR(h.highs.values(), h.lows.values(), h.closes.values(), h.cfg.ATRWindow)
	if !fastOK || !slowOK || !rvOK || !rsiOK || !atrOK {
		return h.hold(types.ReasonWarmingInd)
	}

	// Volatility regime gate for fresh entries.
	volOK := hvOK && realizedVol > histVol*h.cfg.VolMultiplier

	equity := h.equity(pf, price)
	posQty, posEntry := h.position(pf)

	stopDist := atr * h.cfg.ATRMultiplierSL
	tpDist := atr * h.cfg.ATRMultiplierTP
	frac := risk.Fraction(equity, price, stopDist,
		h.cfg.RiskPerTrade, h.cfg.MaxPositionPct, h.cfg.MinTradeFraction)

	// Cooldown suppresses everything else.
	if h.cooldown > 0 {
		h.cooldown--
		return h.hold(types.ReasonCooldown)
	}

	if posQty != 0 {
		return h.managePosition(price, posQty, posEntry, stopDist, tpDist)
	}

	trendUp := fastEMA > slowEMA
	trendDown := fastEMA < slowEMA

	z := h.zScore(price)

	if trendUp && volOK {
		pullback := (fastEMA - price) / fastEMA
		if pullback >= h.cfg.MinPullbackPct && pullback <= h.cfg.PullbackPct && rsi < h.cfg.RSIPullbackThresh {
			return h.emit(types.Signal{Action: types.Buy, Size: frac, Reason: types.ReasonTrendPullbackLong})
		}
		if z < -zScoreSeedThreshold {
			return h.emit(types.Signal{Action: types.Buy, Size: h.halfSize(frac), Reason: types.ReasonSeedMeanRevLong})
		}
	}

	if trendDown && volOK {
		bounce := (price - fastEMA) / fastEMA
		if bounce >= h.cfg.MinPullbackPct && bounce <= h.cfg.PullbackPct && rsi > 100-h.cfg.RSIPullbackThresh {
			return h.emit(types.Signal{Action: types.Sell, Size: frac, Reason: types.ReasonTrendPullbackShort})
		}
		if z > zScoreSeedThreshold {
			return h.emit(types.Signal{Action: types.Sell, Size: h.halfSize(frac), Reason: types.ReasonSeedMeanRevShort})
		}
	}

	// Seeding: guarantee exploration activity until enough fills confirmed.
	// The counter only advances in OnTrade, so unexecuted seeds keep firing.
	if h.tradeCount < h.cfg.SeedTradeTarget {
		if trendUp {
			return h.emit(types.Signal{Action: types.Buy, Size: h.cfg.MinTradeFraction, Reason: types.ReasonSeedMinTradesLong})
		}
		if trendDown {
			return h.emit(types.Signal{Action: types.Sell, Size: h.cfg.MinTradeFraction, Reason: types.ReasonSeedMinTradesShort})
		}
	}

	return h.hold(types.ReasonNoEntry)
}

// managePosition runs the exit checks for an open position.
func (h *HybridEMAPullback) managePosition(price, posQty float64, posEntry *float64, stopDist, tpDist float64) types.Signal {
	h.barsHeld++

	entry := price // conservative fallback when nobody tracked the entry
	if posEntry != nil {
		entry = *posEntry
	}

	if posQty > 0 { // long
		if price >= entry+tpDist {
			return h.emit(types.Signal{
				Action: types.Sell, Size: 1, Reason: types.ReasonTPHit,
				TargetPrice: entry + tpDist, StopLoss: entry - stopDist, EntryPrice: entry,
			})
		}
		if price <= entry-stopDist {
			h.armCooldown()
			return h.emit(types.Signal{
				Action: types.Sell, Size: 1, Reason: types.ReasonSLHit,
				StopLoss: entry - stopDist, EntryPrice: entry,
			})
		}
	} else { // short
		if price <= entry-tpDist {
			return h.emit(types.Signal{
				Action: types.Buy, Size: 1, Reason: types.ReasonTPHitShort,
				TargetPrice: entry - tpDist, StopLoss: entry + stopDist, EntryPrice: entry,
			})
		}
		if price >= entry+stopDist {
			h.armCooldown()
			return h.emit(types.Signal{
				Action: types.Buy, Size: 1, Reason: types.ReasonSLHitShort,
				StopLoss: entry + stopDist, EntryPrice: entry,
			})
		}
	}

	if h.barsHeld >= h.cfg.MaxHoldBars {
		action := types.Sell
		if posQty < 0 {
			action = types.Buy
		}
		return h.emit(types.Signal{Action: action, Size: 1, Reason: types.ReasonTimeExit})
	}

	return h.hold(types.ReasonManage)
}

// OnTrade commits position state after a confirmed fill. The reason code
// on the accompanying signal is the sole close trigger; the fill sign is
// deliberately not reconciled against the tracked side.
func (h *HybridEMAPullback) OnTrade(sig types.Signal, execPrice, execSize float64, ts time.Time) {
	if execSize != 0 && h.entryPrice == nil {
		p := execPrice
		h.entryPrice = &p
		h.barsHeld = 0
		h.tradeCount++
		metrics.TradesConfirmed.WithLabelValues(h.name).Inc()
		h.log.Info("fill_open_confirmed",
			logger.String("strategy", h.name),
			logger.Float64("price", execPrice),
			logger.Float64("size", execSize),
			logger.Time("ts", ts),
		)
	}

	if types.IsClosingReason(sig.Reason) {
		h.entryPrice = nil
		h.barsHeld = 0
		h.armCooldown()
		h.log.Info("fill_close_confirmed",
			logger.String("strategy", h.name),
			logger.String("reason", sig.Reason),
			logger.Float64("price", execPrice),
			logger.Time("ts", ts),
		)
	}
}

// State snapshots the bounded history and counters for checkpointing.
func (h *HybridEMAPullback) State() types.State {
	st := types.State{
		History:    h.history.Values(),
		Highs:      h.highs.Values(),
		Lows:       h.lows.Values(),
		Closes:     h.closes.Values(),
		BarsHeld:   h.barsHeld,
		Cooldown:   h.cooldown,
		TradeCount: h.tradeCount,
	}
	if h.entryPrice != nil {
		p := *h.entryPrice
		st.EntryPrice = &p
	}
	return st
}

// Restore rehydrates a snapshot. Empty series leave the current buffers
// untouched so a partial checkpoint cannot wipe live history.
func (h *HybridEMAPullback) Restore(st types.State) {
	if len(st.History) > 0 {
		h.history = newSeriesFrom(st.History)
	}
	if len(st.Highs) > 0 {
		h.highs = newSeriesFrom(st.Highs)
	}
	if len(st.Lows) > 0 {
		h.lows = newSeriesFrom(st.Lows)
	}
	if len(st.Closes) > 0 {
		h.closes = newSeriesFrom(st.Closes)
	}
	h.entryPrice = nil
	if st.EntryPrice != nil {
		p := *st.EntryPrice
		h.entryPrice = &p
	}
	h.barsHeld = st.BarsHeld
	h.cooldown = st.Cooldown
	h.tradeCount = st.TradeCount
}

func (h *HybridEMAPullback) warmupBars() int {
	w := h.cfg.LongWindow
	if h.cfg.HistVolWindow > w {
		w = h.cfg.HistVolWindow
	}
	return w + 5
}

func (h *HybridEMAPullback) appendBar(mkt types.Market, price float64) {
	h.history.Add(price)
	if bar, ok := mkt.LastBar(); ok {
		h.highs.Add(bar.High)
		h.lows.Add(bar.Low)
		h.closes.Add(bar.Close)
		return
	}
	h.highs.Add(price)
	h.lows.Add(price)
	h.closes.Add(price)
}

// equity values the account at the current price. A host-reported total
// account value is taken as-is; free cash gets the open position added at
// the current price. Falls back to the configured starting cash when the
// portfolio exposes neither.
func (h *HybridEMAPullback) equity(pf types.Portfolio, price float64) float64 {
	if pf == nil {
		return h.startingCash
	}
	if er, ok := pf.(types.EquityReporter); ok {
		if eq, ok := er.EquityValue(); ok {
			return eq
		}
	}
	cash, ok := pf.Cash()
	if !ok {
		return h.startingCash
	}
	return cash + pf.Quantity()*price
}

// position derives side/entry from the portfolio snapshot, preferring the
// host's average entry price and falling back to the internally tracked
// fill price.
func (h *HybridEMAPullback) position(pf types.Portfolio) (qty float64, entry *float64) {
	if pf == nil {
		return 0, nil
	}
	qty = pf.Quantity()
	if qty == 0 {
		return 0, nil
	}
	if avg, ok := pf.AvgEntryPrice(); ok {
		return qty, &avg
	}
	return qty, h.entryPrice
}

// zScore measures how far the current price sits from its recent mean, in
// population standard deviations over max(5, VolWindow) bars.
func (h *HybridEMAPullback) zScore(price float64) float64 {
	window := h.cfg.VolWindow
	if window < 5 {
		window = 5
	}
	recent := h.history.Tail(window)
	mean := indicator.Mean(recent)
	std, _ := indicator.StdDev(recent, 0)
	return (price - mean) / (std + 1e-12)
}

func (h *HybridEMAPullback) halfSize(frac float64) float64 {
	half := frac * 0.5
	if half < h.cfg.MinTradeFraction {
		return h.cfg.MinTradeFraction
	}
	return half
}

func (h *HybridEMAPullback) armCooldown() {
	h.cooldown = h.cfg.CooldownBars
	metrics.CooldownsArmed.WithLabelValues(h.name).Inc()
}

func lastPrice(mkt types.Market) (float64, bool) {
	if mkt == nil {
		return 0, false
	}
	return mkt.LastPrice()
}
