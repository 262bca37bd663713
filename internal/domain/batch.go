package domain

import (
	"strconv"

	"github.com/ghalamif/GraphiteFlow/internal/cdtime"
)

// SampleBatch is one reporting event handed over by the collection
// daemon: identifying metadata, a timestamp, and an ordered list of
// named values measured in the same cycle. Batches are read-only to
// this module and are never retained past one dispatch call.
type SampleBatch struct {
	Host           string
	Plugin         string
	PluginInstance string
	Type           string
	TypeInstance   string
	Time           cdtime.Time
	Interval       cdtime.Time
	Values         []NamedValue
}

// NamedValue pairs a value with its data-source name. The name may be
// empty when the batch carries exactly one value.
type NamedValue struct {
	Name  string
	Value Value
}

// Value is one measurement. Concrete kinds mirror the daemon's
// data-source types: Gauge, Derive, Counter, Absolute.
type Value interface {
	// String renders the value as decimal text for the wire format.
	// NaN and infinities render as produced by strconv and are passed
	// through unmodified.
	String() string
}

// Gauge is an instantaneous reading.
type Gauge float64

// Derive is a cumulative signed count; consumers usually turn it into
// a per-second rate.
type Derive int64

// Counter is a cumulative unsigned count subject to wrap-around.
type Counter uint64

// Absolute is a count that the daemon resets on every read.
type Absolute uint64

func (g Gauge) String() string    { return strconv.FormatFloat(float64(g), 'f', -1, 64) }
func (d Derive) String() string   { return strconv.FormatInt(int64(d), 10) }
func (c Counter) String() string  { return strconv.FormatUint(uint64(c), 10) }
func (a Absolute) String() string { return strconv.FormatUint(uint64(a), 10) }
