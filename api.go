package graphiteflow

import (
	"time"

	base "github.com/ghalamif/GraphiteFlow/pkg/graphiteflow"
)

// Type aliases so consumers can import github.com/ghalamif/GraphiteFlow directly.
type (
	Config        = base.Config
	NodeConfig    = base.NodeConfig
	ArchiveConfig = base.ArchiveConfig
	MetricsConfig = base.MetricsConfig
	Bridge        = base.Bridge
	BridgeOption  = base.BridgeOption
	SampleBatch   = base.SampleBatch
	NamedValue    = base.NamedValue
	Value         = base.Value
	Gauge         = base.Gauge
	Derive        = base.Derive
	Counter       = base.Counter
	Absolute      = base.Absolute
	Time          = base.Time
	BatchFunc     = base.BatchFunc
	Writer        = base.Writer
	Observability = base.Observability
	Field         = base.Field
	Dialer        = base.Dialer
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

func ParseConfig(raw []byte) (*Config, error) {
	return base.ParseConfig(raw)
}

// Bridge construction.
func New(cfg *Config, opts ...BridgeOption) (*Bridge, error) {
	return base.New(cfg, opts...)
}

func Conf(path string, opts ...BridgeOption) (*Bridge, error) {
	return base.Conf(path, opts...)
}

// Options.
func WithObservability(obs Observability) BridgeOption {
	return base.WithObservability(obs)
}

func WithDialer(d Dialer) BridgeOption {
	return base.WithDialer(d)
}

func WithWriter(w Writer) BridgeOption {
	return base.WithWriter(w)
}

// Writer adapters.
func NewCallbackWriter(name string, fn BatchFunc) Writer {
	return base.NewCallbackWriter(name, fn)
}

// Fixed-point time constructors.
func TimeFromGo(ts time.Time) Time {
	return base.TimeFromGo(ts)
}

func TimeFromNanos(ns uint64) Time {
	return base.TimeFromNanos(ns)
}

func TimeFromDuration(d time.Duration) (Time, error) {
	return base.TimeFromDuration(d)
}
