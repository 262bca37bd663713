package graphiteflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ghalamif/GraphiteFlow/internal/adapters/observability"
	"github.com/ghalamif/GraphiteFlow/internal/app/dispatch"
	"github.com/ghalamif/GraphiteFlow/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// BridgeOption customizes the dependencies used by Bridge.
type BridgeOption func(*bridgeOverrides)

type bridgeOverrides struct {
	observability ports.Observability
	dialer        dispatch.Dialer
	writers       []ports.Writer
}

// WithObservability plugs in a custom observability backend
// (OpenTelemetry, structured logs, test fakes).
func WithObservability(obs Observability) BridgeOption {
	return func(o *bridgeOverrides) {
		o.observability = obs
	}
}

// WithDialer overrides how destination streams are established. Tests
// use this to substitute in-memory streams for TCP connections.
func WithDialer(d Dialer) BridgeOption {
	return func(o *bridgeOverrides) {
		o.dialer = d
	}
}

// WithWriter registers an extra destination alongside the configured
// nodes (custom stores, channels, callbacks).
func WithWriter(w Writer) BridgeOption {
	return func(o *bridgeOverrides) {
		if w != nil {
			o.writers = append(o.writers, w)
		}
	}
}

// Bridge owns the full dispatch path: one established writer per
// configured destination, fan-out on every incoming batch, and the
// metrics HTTP server. The daemon calls Write once per collection
// cycle, possibly from several goroutines at once.
type Bridge struct {
	cfg        *Config
	obs        ports.Observability
	router     *dispatch.Router
	metricsSrv *http.Server
}

// New establishes every configured destination eagerly and returns the
// registered Bridge. Any connection failure fails the whole
// registration; there is no lazy or deferred connect.
func New(cfg *Config, opts ...BridgeOption) (*Bridge, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var overrides bridgeOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	obs := overrides.observability
	if obs == nil {
		obs = observability.NewPromObs()
	}

	router, err := dispatch.Build(cfg, obs, overrides.dialer)
	if err != nil {
		return nil, err
	}
	for _, w := range overrides.writers {
		router.Register(w)
	}

	return &Bridge{cfg: cfg, obs: obs, router: router}, nil
}

// Conf loads YAML from disk and builds a Bridge from it.
func Conf(path string, opts ...BridgeOption) (*Bridge, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Write dispatches one sample batch to every registered destination.
// The batch is not retained past the call. Steady-state delivery
// failures never surface here; they are logged and counted.
func (b *Bridge) Write(batch *SampleBatch) {
	b.router.Dispatch(batch)
}

// Writers exposes the registered destinations, one per configured node
// plus any extras, in registration order.
func (b *Bridge) Writers() []Writer {
	return b.router.Writers()
}

// Start launches the metrics HTTP server. It returns immediately; call
// Run to block on a context instead.
func (b *Bridge) Start() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	b.metricsSrv = &http.Server{
		Addr:    b.cfg.Metrics.Addr,
		Handler: mux,
	}

	go func() {
		if err := b.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server exited: %v", err)
		}
	}()
}

// Run starts the bridge and blocks until the provided context is
// cancelled, then shuts down.
func (b *Bridge) Run(ctx context.Context) error {
	b.Start()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return b.Shutdown(shutdownCtx)
}

// Shutdown stops the metrics server and releases every owned stream.
func (b *Bridge) Shutdown(ctx context.Context) error {
	var errs []error

	if b.metricsSrv != nil {
		if err := b.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}

	if err := b.router.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
