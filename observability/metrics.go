package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PaymentsMetrics records payment operation activity for scraping.
type PaymentsMetrics struct {
	operations  *prometheus.CounterVec
	settlements prometheus.Counter
}

var (
	paymentsMetricsOnce sync.Once
	paymentsRegistry    *PaymentsMetrics
)

// Payments returns the lazily-initialised metrics registry for the payment
// program's operations.
func Payments() *PaymentsMetrics {
	paymentsMetricsOnce.Do(func() {
		paymentsRegistry = &PaymentsMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "nomadz",
				Subsystem: "payments",
				Name:      "operations_total",
				Help:      "Total payment program operations segmented by operation and outcome.",
			}, []string{"operation", "outcome"}),
			settlements: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "nomadz",
				Subsystem: "payments",
				Name:      "settlements_total",
				Help:      "Count of booking payments settled.",
			}),
		}
		prometheus.MustRegister(
			paymentsRegistry.operations,
			paymentsRegistry.settlements,
		)
	})
	return paymentsRegistry
}

// RecordOperation counts one operation invocation with its outcome.
func (m *PaymentsMetrics) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordSettlement counts one completed settlement.
func (m *PaymentsMetrics) RecordSettlement() {
	if m == nil {
		return
	}
	m.settlements.Inc()
}
