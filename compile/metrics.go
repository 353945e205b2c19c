// SPDX-License-Identifier: MIT

package compile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used in logs and metric labels.
const (
	StagePolynomize  = "polynomize"
	StagePositivize  = "positivize"
	StageHungarize   = "hungarize"
	StageMassCompile = "masscompile"
)

// Metrics holds the compiler's Prometheus collectors.
type Metrics struct {
	Stages    *prometheus.CounterVec   // crnc_compile_stage_total{stage,result}
	Durations *prometheus.HistogramVec // crnc_compile_stage_seconds{stage}
	Reactions prometheus.Counter       // crnc_compile_reactions_total
	Splits    prometheus.Counter       // crnc_compile_splits_total
}

// NewMetrics creates the collectors and registers them on reg (skipped when
// reg is nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crnc",
			Subsystem: "compile",
			Name:      "stage_total",
			Help:      "Compiler stage runs by outcome.",
		}, []string{"stage", "result"}),
		Durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crnc",
			Subsystem: "compile",
			Name:      "stage_seconds",
			Help:      "Compiler stage wall time.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"stage"}),
		Reactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crnc",
			Subsystem: "compile",
			Name:      "reactions_total",
			Help:      "Mass-action reactions emitted.",
		}),
		Splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crnc",
			Subsystem: "compile",
			Name:      "splits_total",
			Help:      "Variables split into positive and negative parts.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Stages, m.Durations, m.Reactions, m.Splits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observe records one stage run. Nil-safe.
func (m *Metrics) observe(stage string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Stages.WithLabelValues(stage, result).Inc()
	m.Durations.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Metrics) addReactions(n int) {
	if m != nil {
		m.Reactions.Add(float64(n))
	}
}

func (m *Metrics) addSplits(n int) {
	if m != nil {
		m.Splits.Add(float64(n))
	}
}
