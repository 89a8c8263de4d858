// Package executor provides a reference paper host: it applies signals as
// perfect fills against an in-memory account and reports them back through
// the strategy's post-trade hook. It exists for tests and the replay CLI;
// it is not an execution simulator and models no slippage, fees, or
// partial fills.
package executor

import (
	"math"
	"time"

	"github.com/evdnx/gostrat/types"
)

// TradeHook receives confirmed fills, matching the strategy contract.
type TradeHook interface {
	OnTrade(sig types.Signal, execPrice, execSize float64, ts time.Time)
}

// Fill records one executed signal for assertions and replay output.
type Fill struct {
	SignalID string
	Action   types.Action
	Reason   string
	Price    float64
	Size     float64 // signed quantity, positive = buy
	Time     time.Time
}

// Paper is an in-memory account. It implements types.Portfolio, so a
// strategy under test reads its position exactly the way it would from a
// live host.
type Paper struct {
	cash     float64
	qty      float64
	avgEntry float64
	fills    []Fill
}

// NewPaper creates an account with the supplied starting cash.
func NewPaper(startCash float64) *Paper {
	return &Paper{cash: startCash}
}

// Quantity implements types.Portfolio.
func (p *Paper) Quantity() float64 { return p.qty }

// AvgEntryPrice implements types.Portfolio; ok is false when flat.
func (p *Paper) AvgEntryPrice() (float64, bool) {
	if p.qty == 0 {
		return 0, false
	}
	return p.avgEntry, true
}

// Cash implements types.Portfolio.
func (p *Paper) Cash() (float64, bool) { return p.cash, true }

// Equity values the account at the supplied price.
func (p *Paper) Equity(price float64) float64 { return p.cash + p.qty*price }

// Fills returns a copy of every executed fill.
func (p *Paper) Fills() []Fill {
	out := make([]Fill, len(p.fills))
	copy(out, p.fills)
	return out
}

// Execute fills a signal at the given price and confirms it through the
// hook with a signed size. Holds and non-positive sizes are ignored.
// Closing signals flatten the whole position; entries deploy the signal's
// equity fraction.
func (p *Paper) Execute(hook TradeHook, sig types.Signal, price float64, ts time.Time) {
	if sig.Action == types.Hold || sig.Size <= 0 || price <= 0 {
		return
	}

	var qty float64
	if types.IsClosingReason(sig.Reason) && p.qty != 0 {
		qty = math.Abs(p.qty)
	} else {
		qty = p.Equity(price) * sig.Size / price
	}
	if qty <= 0 {
		return
	}

	signed := qty
	if sig.Action == types.Sell {
		signed = -qty
	}

	newQty := p.qty + signed
	p.cash -= price * signed
	switch {
	case newQty == 0:
		p.avgEntry = 0
	case p.qty == 0 || p.qty*newQty < 0:
		p.avgEntry = price
	case math.Abs(newQty) > math.Abs(p.qty):
		p.avgEntry = (p.avgEntry*math.Abs(p.qty) + price*qty) / math.Abs(newQty)
		// reductions keep the existing average
	}
	p.qty = newQty

	p.fills = append(p.fills, Fill{
		SignalID: sig.ID,
		Action:   sig.Action,
		Reason:   sig.Reason,
		Price:    price,
		Size:     signed,
		Time:     ts,
	})

	if hook != nil {
		hook.OnTrade(sig, price, signed, ts)
	}
}
