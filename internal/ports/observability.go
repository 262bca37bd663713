package ports

// Observability is the logging/metrics surface the adapters report
// through. The default implementation is Prometheus-backed; tests plug
// in lightweight fakes.
type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	ObserveLatency(name string, seconds float64)
	SetGauge(name string, v float64)
}

// Field is a structured log field.
type Field struct {
	Key   string
	Value any
}
