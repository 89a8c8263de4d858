// Package strategy implements the pluggable signal generators consumed by
// an external bot runner. Each strategy is invoked once per bar, returns a
// proposal Signal, and learns about actual fills through the post-trade
// hook. All calls are assumed serial; nothing here is safe for concurrent
// use and nothing blocks.
package strategy

import (
	"fmt"
	"sort"
	"time"

	"github.com/evdnx/gostrat/config"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/types"
)

// Strategy is the contract between a signal generator and its host.
type Strategy interface {
	Name() string

	// GenerateSignal evaluates the current bar against the portfolio
	// snapshot and returns a trade proposal. It never panics on malformed
	// inputs; degraded data yields a hold with a diagnostic reason.
	GenerateSignal(mkt types.Market, pf types.Portfolio) types.Signal

	// OnTrade reports a confirmed fill back to the strategy. execSize is
	// signed: positive for buys, negative for sells.
	OnTrade(sig types.Signal, execPrice, execSize float64, ts time.Time)

	// State snapshots the internal buffers and counters for host-driven
	// checkpointing; Restore is its inverse.
	State() types.State
	Restore(st types.State)
}

// Factory builds a strategy from the loaded config.
type Factory func(cfg config.Config, log logger.Logger) (Strategy, error)

var registry = map[string]Factory{}

// Register adds a factory under a host-visible name. Called from init;
// duplicate names are a programming error.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("strategy: duplicate registration of %q", name))
	}
	registry[name] = f
}

// New instantiates a registered strategy by name.
func New(name string, cfg config.Config, log logger.Logger) (Strategy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q (registered: %v)", name, Names())
	}
	return f(cfg, log)
}

// Names lists the registered strategy names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
