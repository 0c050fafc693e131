// Package metrics exposes Prometheus instrumentation for the
// maintenance engine. Collection is read-only; nothing here touches
// consensus state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Maintenance aggregates the per-pass collectors. A nil *Maintenance
// is a valid no-op receiver so the engine never branches on whether
// metrics are wired.
type Maintenance struct {
	passes       prometheus.Counter
	passDuration prometheus.Histogram
	workerPay    prometheus.Counter
	bonusIssued  prometheus.Counter
	reapedRows   prometheus.Counter
}

// NewMaintenance builds and registers the collectors.
func NewMaintenance(reg prometheus.Registerer) *Maintenance {
	m := &Maintenance{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edcchain",
			Subsystem: "maintenance",
			Name:      "passes_total",
			Help:      "Completed maintenance passes.",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "edcchain",
			Subsystem: "maintenance",
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of maintenance passes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		workerPay: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edcchain",
			Subsystem: "maintenance",
			Name:      "worker_pay_satoshis_total",
			Help:      "Core satoshis paid to workers.",
		}),
		bonusIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edcchain",
			Subsystem: "maintenance",
			Name:      "bonus_issued_satoshis_total",
			Help:      "Satoshis issued as daily bonuses.",
		}),
		reapedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edcchain",
			Subsystem: "maintenance",
			Name:      "reaped_rows_total",
			Help:      "History rows pruned past the retention horizon.",
		}),
	}
	reg.MustRegister(m.passes, m.passDuration, m.workerPay, m.bonusIssued, m.reapedRows)
	return m
}

// ObservePass records one completed pass.
func (m *Maintenance) ObservePass(d time.Duration) {
	if m == nil {
		return
	}
	m.passes.Inc()
	m.passDuration.Observe(d.Seconds())
}

// AddWorkerPay records satoshis paid to a worker.
func (m *Maintenance) AddWorkerPay(amount int64) {
	if m == nil || amount <= 0 {
		return
	}
	m.workerPay.Add(float64(amount))
}

// AddBonusIssued records satoshis issued as bonuses.
func (m *Maintenance) AddBonusIssued(amount int64) {
	if m == nil || amount <= 0 {
		return
	}
	m.bonusIssued.Add(float64(amount))
}

// AddReaped records pruned history rows.
func (m *Maintenance) AddReaped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reapedRows.Add(float64(n))
}
