package graphiteflow

import (
	"time"

	"github.com/ghalamif/GraphiteFlow/internal/app/dispatch"
	"github.com/ghalamif/GraphiteFlow/internal/cdtime"
	"github.com/ghalamif/GraphiteFlow/internal/domain"
	"github.com/ghalamif/GraphiteFlow/internal/ports"
)

// SampleBatch is one reporting event handed over by the collection
// daemon. It mirrors internal/domain.SampleBatch but is exported so
// embedding services can construct batches directly.
type SampleBatch = domain.SampleBatch

// NamedValue pairs a value with its data-source name.
type NamedValue = domain.NamedValue

// Value is one measurement in a batch.
type Value = domain.Value

// Concrete value kinds, mirroring the daemon's data-source types.
type (
	Gauge    = domain.Gauge
	Derive   = domain.Derive
	Counter  = domain.Counter
	Absolute = domain.Absolute
)

// Time is the daemon's 64-bit fixed-point timestamp.
type Time = cdtime.Time

// TimeFromGo encodes a calendar timestamp into fixed-point time.
func TimeFromGo(ts time.Time) Time {
	return cdtime.FromTime(ts)
}

// TimeFromNanos encodes an epoch nanosecond count.
func TimeFromNanos(ns uint64) Time {
	return cdtime.FromNanos(ns)
}

// TimeFromDuration encodes a time span. Negative spans are rejected.
func TimeFromDuration(d time.Duration) (Time, error) {
	return cdtime.FromDuration(d)
}

// Writer consumes sample batches and delivers them to one destination.
type Writer = ports.Writer

// Observability emits metrics/logs about delivery and failures.
type Observability = ports.Observability

// Field is a structured log field used by Observability implementations.
type Field = ports.Field

// Dialer establishes the byte stream for one destination address.
type Dialer = dispatch.Dialer
