package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	swapDefaultRegistry(t, registry)

	m := New()
	if m.OperationsExecuted == nil || m.HTTPRequests == nil || m.LoansRequested == nil {
		t.Fatalf("expected collectors to be initialized: %+v", m)
	}

	m.OperationsExecuted.WithLabelValues("deposit").Inc()
	m.LedgerConsistencyChecks.WithLabelValues("consistent").Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{
		"bankcore_operations_total",
		"bankcore_loans_requested_total",
		"bankcore_ledger_consistency_checks_total",
	} {
		if !names[want] {
			t.Errorf("expected metric family %s to be registered", want)
		}
	}
}

func swapDefaultRegistry(t *testing.T, registry *prometheus.Registry) {
	t.Helper()

	oldRegisterer, oldGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = oldRegisterer
		prometheus.DefaultGatherer = oldGatherer
	})
}
