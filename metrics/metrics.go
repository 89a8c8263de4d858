package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignalsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_signals_emitted_total",
			Help: "Signals emitted per strategy and action.",
		},
		[]string{"strategy", "action"},
	)

	TradesConfirmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_trades_confirmed_total",
			Help: "Fills confirmed through the post-trade hook, per strategy.",
		},
		[]string{"strategy"},
	)

	CooldownsArmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostrat_cooldowns_armed_total",
			Help: "Cooldown windows armed after stop-loss exits, per strategy.",
		},
		[]string{"strategy"},
	)
)

func init() {
	prometheus.MustRegister(SignalsEmitted, TradesConfirmed, CooldownsArmed)
}
