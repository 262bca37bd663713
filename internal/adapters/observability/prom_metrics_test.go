package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromObsMetrics(t *testing.T) {
	origReg := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = origReg
		prometheus.DefaultGatherer = origGatherer
	})

	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	obs := NewPromObs()

	obs.IncCounter("graphite_lines_sent_total", 5)
	if got := testutil.ToFloat64(obs.counters["graphite_lines_sent_total"]); got != 5 {
		t.Fatalf("expected lines counter 5, got %f", got)
	}

	obs.IncCounter("graphite_write_errors_total", 2)
	if got := testutil.ToFloat64(obs.counters["graphite_write_errors_total"]); got != 2 {
		t.Fatalf("expected error counter 2, got %f", got)
	}

	obs.SetGauge("graphite_nodes_connected", 3)
	if got := testutil.ToFloat64(obs.gauges["graphite_nodes_connected"]); got != 3 {
		t.Fatalf("expected nodes gauge 3, got %f", got)
	}

	obs.ObserveLatency("dispatch_latency_seconds", 0.002)
	hCollector := obs.histos["dispatch_latency_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected latency histogram to record 1 sample, got %d", samples)
	}

	// Unknown names are ignored, not registered on the fly.
	obs.IncCounter("unknown_counter", 1)
	obs.SetGauge("unknown_gauge", 1)
}
