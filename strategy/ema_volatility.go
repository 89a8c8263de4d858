package strategy

import (
	"time"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/indicator"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/metrics"
	"github.com/evdnx/gostrat/types"
)

const (
	sideLong  = "long"
	sideShort = "short"
)

// EMAVolatility is the simpler of the two generators: an EMA crossover
// trend gate combined with a volatility-expansion filter, fixed-percentage
// take-profit/stop-loss off the entry price, and a time exit.
//
// Commit model: unlike HybridEMAPullback, position state here is
// self-contained and committed synchronously at signal time. The strategy
// does not read the portfolio snapshot and OnTrade is a no-op; this
// contract behaves differently under partial fills and the two machines
// are intentionally kept separate.
type EMAVolatility struct {
	baseStrategy
	cfg config.EMAVolConfig

	closes *series

	side       string // "", sideLong, sideShort
	entryPrice float64
	barsHeld   int
	cooldown   int
	tradeCount int
}

// NewEMAVolatility validates the config and returns a fresh instance.
func NewEMAVolatility(cfg config.Config, log logger.Logger) (*EMAVolatility, error) {
	ec := cfg.EMAVol
	if err := ec.Validate(); err != nil {
		return nil, err
	}
	return &EMAVolatility{
		baseStrategy: newBase("ema_volatility", log),
		cfg:          ec,
		closes:       newSeries(),
	}, nil
}

func init() {
	Register("ema_volatility", func(cfg config.Config, log logger.Logger) (Strategy, error) {
		return NewEMAVolatility(cfg, log)
	})
}

// GenerateSignal evaluates one bar against the internal state machine.
func (e *EMAVolatility) GenerateSignal(mkt types.Market, _ types.Portfolio) types.Signal {
	price, ok := lastPrice(mkt)
	if !ok {
		return e.hold(types.ReasonNoPrice)
	}
	e.closes.Add(price)

	if e.closes.Len() < e.cfg.SlowWindow+e.cfg.VolWindow {
		return e.hold(types.ReasonWarmingUp)
	}

	closes := e.closes.values()
	fastEMA, fastOK := indicator.EMA(closes, e.cfg.FastWindow)
	slowEMA, slowOK := indicator.EMA(closes, e.cfg.SlowWindow)
	rollStd, rollOK := indicator.PctChangeStd(closes, e.cfg.VolWindow)
	overallStd, overallOK := indicator.StdDev(indicator.Returns(closes), 1)
	if !fastOK || !slowOK || !rollOK || !overallOK {
		return e.hold(types.ReasonWarmingInd)
	}

	// Expansion: the recent return std must stand out against the whole
	// accumulated return series.
	volExpansion := rollStd > overallStd*e.cfg.VolMultiplier

	if e.cooldown > 0 {
		e.cooldown--
		return e.hold(types.ReasonCooldown)
	}

	if e.side != "" {
		return e.managePosition(price)
	}

	switch {
	case fastEMA > slowEMA && volExpansion:
		e.open(sideLong, price)
		return e.emit(types.Signal{
			Action: types.Buy, Size: e.cfg.PositionPct, Reason: types.ReasonTrendVolExpLong,
			EntryPrice: price,
			TargetPrice: price * (1 + e.cfg.TakeProfitPct),
			StopLoss:    price * (1 - e.cfg.StopLossPct),
		})
	case fastEMA < slowEMA && volExpansion:
		e.open(sideShort, price)
		return e.emit(types.Signal{
			Action: types.Sell, Size: e.cfg.PositionPct, Reason: types.ReasonTrendVolExpShort,
			EntryPrice: price,
			TargetPrice: price * (1 - e.cfg.TakeProfitPct),
			StopLoss:    price * (1 + e.cfg.StopLossPct),
		})
	}

	return e.hold(types.ReasonNoEntry)
}

func (e *EMAVolatility) managePosition(price float64) types.Signal {
	e.barsHeld++
	entry := e.entryPrice

	if e.side == sideLong {
		if price >= entry*(1+e.cfg.TakeProfitPct) {
			e.clearPosition()
			return e.emit(types.Signal{Action: types.Sell, Size: 1, Reason: types.ReasonTPHit, EntryPrice: entry})
		}
		if price <= entry*(1-e.cfg.StopLossPct) {
			e.clearPosition()
			e.armCooldown()
			return e.emit(types.Signal{Action: types.Sell, Size: 1, Reason: types.ReasonSLHit, EntryPrice: entry})
		}
	} else {
		if price <= entry*(1-e.cfg.TakeProfitPct) {
			e.clearPosition()
			return e.emit(types.Signal{Action: types.Buy, Size: 1, Reason: types.ReasonTPHitShort, EntryPrice: entry})
		}
		if price >= entry*(1+e.cfg.StopLossPct) {
			e.clearPosition()
			e.armCooldown()
			return e.emit(types.Signal{Action: types.Buy, Size: 1, Reason: types.ReasonSLHitShort, EntryPrice: entry})
		}
	}

	if e.barsHeld >= e.cfg.MaxHoldBars {
		action := types.Sell
		if e.side == sideShort {
			action = types.Buy
		}
		e.clearPosition()
		return e.emit(types.Signal{Action: action, Size: 1, Reason: types.ReasonTimeExit, EntryPrice: entry})
	}

	return e.hold(types.ReasonManage)
}

// OnTrade is a deliberate no-op: this machine commits entries and exits at
// signal time rather than on fill confirmation.
func (e *EMAVolatility) OnTrade(types.Signal, float64, float64, time.Time) {}

// State snapshots the close history and position scalars.
func (e *EMAVolatility) State() types.State {
	st := types.State{
		Closes:     e.closes.Values(),
		Side:       e.side,
		BarsHeld:   e.barsHeld,
		Cooldown:   e.cooldown,
		TradeCount: e.tradeCount,
	}
	if e.side != "" {
		p := e.entryPrice
		st.EntryPrice = &p
	}
	return st
}

// Restore rehydrates a snapshot; an empty close series keeps the current
// buffer.
func (e *EMAVolatility) Restore(st types.State) {
	if len(st.Closes) > 0 {
		e.closes = newSeriesFrom(st.Closes)
	}
	e.side = st.Side
	e.entryPrice = 0
	if st.EntryPrice != nil {
		e.entryPrice = *st.EntryPrice
	}
	e.barsHeld = st.BarsHeld
	e.cooldown = st.Cooldown
	e.tradeCount = st.TradeCount
}

func (e *EMAVolatility) open(side string, price float64) {
	e.side = side
	e.entryPrice = price
	e.barsHeld = 0
	e.tradeCount++
	metrics.TradesConfirmed.WithLabelValues(e.name).Inc()
}

func (e *EMAVolatility) clearPosition() {
	e.side = ""
	e.entryPrice = 0
	e.barsHeld = 0
}

func (e *EMAVolatility) armCooldown() {
	e.cooldown = e.cfg.CooldownBars
	metrics.CooldownsArmed.WithLabelValues(e.name).Inc()
}
