// Package metrics defines the Prometheus collectors for game activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// Metrics groups the collectors updated by the HTTP server and the CLI.
type Metrics struct {
	Actions       *prometheus.CounterVec
	GamesStarted  *prometheus.CounterVec
	GamesFinished *prometheus.CounterVec
	GuessesToWin  prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_actions_total",
				Help: "Input actions applied to games, by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		GamesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_started_total",
				Help: "Games started, by mode",
			},
			[]string{"mode"},
		),
		GamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_finished_total",
				Help: "Games that reached a terminal state",
			},
			[]string{"state"},
		),
		GuessesToWin: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordle_guesses_per_win",
				Help:    "Number of submitted rows in won games",
				Buckets: prometheus.LinearBuckets(1, 1, 6),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Actions, m.GamesStarted, m.GamesFinished, m.GuessesToWin)
	}
	return m
}

// Started records a new game.
func (m *Metrics) Started(mode string) {
	if m == nil {
		return
	}
	m.GamesStarted.WithLabelValues(mode).Inc()
}

// Observe records the result of one applied action.
func (m *Metrics) Observe(a game.Action, r game.Result) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(a.Kind.String(), string(r.Outcome)).Inc()
	if r.Outcome != game.OutcomeGameEnded {
		return
	}
	m.GamesFinished.WithLabelValues(string(r.State)).Inc()
	if r.State == game.StateWon {
		m.GuessesToWin.Observe(float64(r.Row + 1))
	}
}

// Totals gathers the counter family name from g and sums it by the value of
// label. It is used to print an end-of-session summary without a scrape.
func Totals(g prometheus.Gatherer, name, label string) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			var key string
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label {
					key = lp.GetValue()
				}
			}
			out[key] += m.GetCounter().GetValue()
		}
	}
	return out, nil
}
