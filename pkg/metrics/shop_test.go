package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilReceiverIsSafe(t *testing.T) {
	var m *ShopMetrics
	m.IncPurchase("bubble", "owned")
	m.IncPurchaseFailure("insufficient-balance")
	m.IncRollbackRun()
	m.IncHandlerFailure("friendrequest")
	m.ObserveRunDuration(time.Second)
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewShopMetrics(reg)

	m.IncPurchase("bubble", "vip-daily")
	m.IncPurchase("bubble", "vip-daily")
	m.IncHandlerFailure("")

	if got := testutil.ToFloat64(m.purchases.WithLabelValues("bubble", "vip-daily")); got != 2 {
		t.Fatalf("expected 2 purchases, got %v", got)
	}
	if got := testutil.ToFloat64(m.handlerFailures.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty handler label to normalize, got %v", got)
	}
}
