// Package config defines the typed strategy hyperparameters. The original
// deployment fed these from a flat JSON dict; here every knob is a named,
// typed field with its default recorded next to it, and validation runs
// before any trading starts.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// HybridConfig tunes the hybrid EMA + pullback + volatility-filter strategy.
type HybridConfig struct {
	ShortWindow   int `json:"short_window"`    // default 21, fast EMA span
	LongWindow    int `json:"long_window"`     // default 50, slow EMA span
	VolWindow     int `json:"vol_window"`      // default 21, realized volatility window
	HistVolWindow int `json:"hist_vol_window"` // default 63, historical volatility window
	RSIWindow     int `json:"rsi_window"`      // default 14
	ATRWindow     int `json:"atr_window"`      // default 14

	VolMultiplier     float64 `json:"vol_multiplier"`      // default 1.6, realized must exceed hist*mult
	PullbackPct       float64 `json:"pullback_pct"`        // default 0.015, max pullback toward fast EMA
	MinPullbackPct    float64 `json:"min_pullback_pct"`    // default 0.005, min pullback worth trading
	RSIPullbackThresh float64 `json:"rsi_pullback_thresh"` // default 45, long entries need RSI below this
	ATRMultiplierSL   float64 `json:"atr_multiplier_sl"`   // default 1.8, stop distance in ATRs
	ATRMultiplierTP   float64 `json:"atr_multiplier_tp"`   // default 3.0, target distance in ATRs

	MaxPositionPct   float64 `json:"max_position_pct"`   // default 0.30, exposure cap per trade
	RiskPerTrade     float64 `json:"risk_per_trade"`     // default 0.01, equity fraction risked per trade
	MinTradeFraction float64 `json:"min_trade_fraction"` // default 0.01, smallest deployable fraction

	MaxHoldBars     int `json:"max_hold_bars"`     // default 120, time exit
	CooldownBars    int `json:"cooldown_bars"`     // default 10, bars suppressed after a stop-loss
	SeedTradeTarget int `json:"seed_trade_target"` // default 10, min confirmed trades before seeding stops
}

// DefaultHybridConfig is the documented default table for HybridConfig.
func DefaultHybridConfig() HybridConfig {
	return HybridConfig{
		ShortWindow:       21,
		LongWindow:        50,
		VolWindow:         21,
		HistVolWindow:     63,
		RSIWindow:         14,
		ATRWindow:         14,
		VolMultiplier:     1.6,
		PullbackPct:       0.015,
		MinPullbackPct:    0.005,
		RSIPullbackThresh: 45,
		ATRMultiplierSL:   1.8,
		ATRMultiplierTP:   3.0,
		MaxPositionPct:    0.30,
		RiskPerTrade:      0.01,
		MinTradeFraction:  0.01,
		MaxHoldBars:       120,
		CooldownBars:      10,
		SeedTradeTarget:   10,
	}
}

// Validate returns the first configuration problem found.
func (c *HybridConfig) Validate() error {
	if c.ShortWindow <= 0 || c.LongWindow <= 0 || c.VolWindow < 2 ||
		c.HistVolWindow < 2 || c.RSIWindow <= 0 || c.ATRWindow <= 0 {
		return errors.New("all indicator windows must be positive (volatility windows >= 2)")
	}
	if c.ShortWindow >= c.LongWindow {
		return fmt.Errorf("ShortWindow (%d) must be below LongWindow (%d)", c.ShortWindow, c.LongWindow)
	}
	if c.VolMultiplier <= 0 {
		return errors.New("VolMultiplier must be positive")
	}
	if c.MinPullbackPct <= 0 || c.PullbackPct < c.MinPullbackPct || c.PullbackPct >= 1 {
		return fmt.Errorf("pullback band [%f, %f] must satisfy 0 < min <= max < 1", c.MinPullbackPct, c.PullbackPct)
	}
	if c.RSIPullbackThresh <= 0 || c.RSIPullbackThresh >= 100 {
		return fmt.Errorf("RSIPullbackThresh (%f) must be inside (0, 100)", c.RSIPullbackThresh)
	}
	if c.ATRMultiplierSL <= 0 || c.ATRMultiplierTP <= 0 {
		return errors.New("ATR multipliers must be positive")
	}
	if c.RiskPerTrade <= 0 || c.RiskPerTrade > 0.5 {
		return fmt.Errorf("RiskPerTrade (%f) must be >0 and <=0.5", c.RiskPerTrade)
	}
	if c.MinTradeFraction <= 0 || c.MaxPositionPct > 1 || c.MaxPositionPct < c.MinTradeFraction {
		return fmt.Errorf("fractions must satisfy 0 < MinTradeFraction (%f) <= MaxPositionPct (%f) <= 1",
			c.MinTradeFraction, c.MaxPositionPct)
	}
	if c.MaxHoldBars <= 0 {
		return errors.New("MaxHoldBars must be positive")
	}
	if c.CooldownBars < 0 {
		return errors.New("CooldownBars cannot be negative")
	}
	if c.SeedTradeTarget < 0 {
		return errors.New("SeedTradeTarget cannot be negative")
	}
	return nil
}

// EMAVolConfig tunes the self-contained EMA / volatility-expansion strategy.
type EMAVolConfig struct {
	FastWindow int `json:"fast_window"` // default 13, fast EMA span
	SlowWindow int `json:"slow_window"` // default 34, slow EMA span
	VolWindow  int `json:"vol_window"`  // default 21, rolling return-volatility window

	VolMultiplier float64 `json:"vol_multiplier"`  // default 1.2, rolling vs overall return std
	PositionPct   float64 `json:"position_pct"`    // default 0.25, fixed entry fraction of equity
	TakeProfitPct float64 `json:"take_profit_pct"` // default 0.04, off entry price
	StopLossPct   float64 `json:"stop_loss_pct"`   // default 0.02, off entry price

	MaxHoldBars  int `json:"max_hold_bars"` // default 96, time exit
	CooldownBars int `json:"cooldown_bars"` // default 8, bars suppressed after a stop-loss
}

// DefaultEMAVolConfig is the documented default table for EMAVolConfig.
func DefaultEMAVolConfig() EMAVolConfig {
	return EMAVolConfig{
		FastWindow:    13,
		SlowWindow:    34,
		VolWindow:     21,
		VolMultiplier: 1.2,
		PositionPct:   0.25,
		TakeProfitPct: 0.04,
		StopLossPct:   0.02,
		MaxHoldBars:   96,
		CooldownBars:  8,
	}
}

// Validate returns the first configuration problem found.
func (c *EMAVolConfig) Validate() error {
	if c.FastWindow <= 0 || c.SlowWindow <= 0 || c.VolWindow < 2 {
		return errors.New("all windows must be positive (VolWindow >= 2)")
	}
	if c.FastWindow >= c.SlowWindow {
		return fmt.Errorf("FastWindow (%d) must be below SlowWindow (%d)", c.FastWindow, c.SlowWindow)
	}
	if c.VolMultiplier <= 0 {
		return errors.New("VolMultiplier must be positive")
	}
	if c.PositionPct <= 0 || c.PositionPct > 1 {
		return fmt.Errorf("PositionPct (%f) must be inside (0, 1]", c.PositionPct)
	}
	if c.TakeProfitPct <= 0 || c.TakeProfitPct >= 1 {
		return fmt.Errorf("TakeProfitPct (%f) must be inside (0, 1)", c.TakeProfitPct)
	}
	if c.StopLossPct <= 0 || c.StopLossPct >= 1 {
		return fmt.Errorf("StopLossPct (%f) must be inside (0, 1)", c.StopLossPct)
	}
	if c.MaxHoldBars <= 0 {
		return errors.New("MaxHoldBars must be positive")
	}
	if c.CooldownBars < 0 {
		return errors.New("CooldownBars cannot be negative")
	}
	return nil
}

// Config is the top-level file the host points the plugin at.
type Config struct {
	Strategy     string       `json:"strategy"`      // registry name, e.g. "hybrid_ema_pullback"
	Symbol       string       `json:"symbol"`        // informational, used in logs
	StartingCash float64      `json:"starting_cash"` // default 10000, equity fallback
	Hybrid       HybridConfig `json:"hybrid"`
	EMAVol       EMAVolConfig `json:"ema_vol"`
}

// Default returns a Config with every strategy at its default table.
func Default() Config {
	return Config{
		Strategy:     "hybrid_ema_pullback",
		StartingCash: 10_000,
		Hybrid:       DefaultHybridConfig(),
		EMAVol:       DefaultEMAVolConfig(),
	}
}

// Validate checks both strategy sections.
func (c *Config) Validate() error {
	if c.Strategy == "" {
		return errors.New("strategy name is required")
	}
	if c.StartingCash <= 0 {
		return errors.New("StartingCash must be positive")
	}
	if err := c.Hybrid.Validate(); err != nil {
		return fmt.Errorf("hybrid: %w", err)
	}
	if err := c.EMAVol.Validate(); err != nil {
		return fmt.Errorf("ema_vol: %w", err)
	}
	return nil
}

// Load reads a JSON config file, applying defaults for absent fields and
// validating the result. A missing file is reported as-is so callers can
// surface it and exit nonzero.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}
