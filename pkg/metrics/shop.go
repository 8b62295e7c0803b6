package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics records purchase and rollback activity.
type ShopMetrics struct {
	purchases       *prometheus.CounterVec
	purchaseFailed  *prometheus.CounterVec
	rollbackRuns    prometheus.Counter
	handlerFailures *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

// NewShopMetrics registers the shop metrics on the provided registerer.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	purchases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_purchases_total",
		Help: "Completed purchases by category and price reason.",
	}, []string{"category", "reason"})
	purchaseFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_purchase_failures_total",
		Help: "Rejected or failed purchases by reason.",
	}, []string{"reason"})
	rollbackRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rollback_runs_total",
		Help: "Rollback fan-out invocations.",
	})
	handlerFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rollback_handler_failures_total",
		Help: "Rollback handler executions that returned an error.",
	}, []string{"handler"})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rollback_run_duration_seconds",
		Help:    "Duration of a full rollback fan-out in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(purchases, purchaseFailed, rollbackRuns, handlerFailures, runDuration)
	return &ShopMetrics{
		purchases:       purchases,
		purchaseFailed:  purchaseFailed,
		rollbackRuns:    rollbackRuns,
		handlerFailures: handlerFailures,
		runDuration:     runDuration,
	}
}

// IncPurchase counts a completed purchase.
func (m *ShopMetrics) IncPurchase(category, reason string) {
	if m == nil || m.purchases == nil {
		return
	}
	m.purchases.WithLabelValues(normalizeLabel(category), normalizeLabel(reason)).Inc()
}

// IncPurchaseFailure counts a purchase that did not complete.
func (m *ShopMetrics) IncPurchaseFailure(reason string) {
	if m == nil || m.purchaseFailed == nil {
		return
	}
	m.purchaseFailed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncRollbackRun counts one fan-out invocation.
func (m *ShopMetrics) IncRollbackRun() {
	if m == nil || m.rollbackRuns == nil {
		return
	}
	m.rollbackRuns.Inc()
}

// IncHandlerFailure counts one failed handler execution.
func (m *ShopMetrics) IncHandlerFailure(handler string) {
	if m == nil || m.handlerFailures == nil {
		return
	}
	m.handlerFailures.WithLabelValues(normalizeLabel(handler)).Inc()
}

// ObserveRunDuration records how long a full fan-out took.
func (m *ShopMetrics) ObserveRunDuration(duration time.Duration) {
	if m == nil || m.runDuration == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
