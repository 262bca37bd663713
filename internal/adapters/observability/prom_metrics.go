package observability

import (
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghalamif/GraphiteFlow/internal/ports"
)

type PromObs struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	linesSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "graphite_lines_sent_total",
		Help: "Wire lines successfully written to graphite nodes.",
	})
	writeErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "graphite_write_errors_total",
		Help: "Failed line writes, swallowed per the delivery policy.",
	})
	archiveRows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "archive_rows_written_total",
		Help: "Rows inserted into the archive destination.",
	})
	archiveErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "archive_write_errors_total",
		Help: "Failed archive inserts.",
	})
	nodesConnected := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphite_nodes_connected",
		Help: "Destinations established at registration time.",
	})
	dispatchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_latency_seconds",
		Help:    "Time to fan one sample batch out to every destination.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	prometheus.MustRegister(linesSent, writeErrors, archiveRows, archiveErrors, nodesConnected, dispatchLatency)

	return &PromObs{
		counters: map[string]prometheus.Counter{
			"graphite_lines_sent_total":   linesSent,
			"graphite_write_errors_total": writeErrors,
			"archive_rows_written_total":  archiveRows,
			"archive_write_errors_total":  archiveErrors,
		},
		gauges: map[string]prometheus.Gauge{
			"graphite_nodes_connected": nodesConnected,
		},
		histos: map[string]prometheus.Observer{
			"dispatch_latency_seconds": dispatchLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	log.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("ERROR: %s: %v%s", msg, err, formatFields(fields))
	}
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func formatFields(fields []ports.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
