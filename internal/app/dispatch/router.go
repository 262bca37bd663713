package dispatch

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/ghalamif/GraphiteFlow/internal/adapters/archive"
	"github.com/ghalamif/GraphiteFlow/internal/adapters/graphite"
	"github.com/ghalamif/GraphiteFlow/internal/app/config"
	"github.com/ghalamif/GraphiteFlow/internal/domain"
	"github.com/ghalamif/GraphiteFlow/internal/ports"
)

// Dialer establishes the byte stream for one destination address.
// Tests inject doubles; production uses TCPDialer.
type Dialer func(address string) (io.WriteCloser, error)

// TCPDialer is the production dialer.
func TCPDialer(address string) (io.WriteCloser, error) {
	return net.Dial("tcp", address)
}

// Router fans incoming sample batches out to every registered writer.
// It has no lifecycle state beyond constructed/operating/closed: all
// destinations are established eagerly in Build and never reconnected.
type Router struct {
	writers []ports.Writer
	closers []io.Closer
	obs     ports.Observability
}

// Build connects every configured destination and registers one writer
// per node, plus the archive writer when configured. Any connection
// failure fails the whole build; connections already opened are closed
// again so a half-built router never leaks streams.
func Build(cfg *config.Config, obs ports.Observability, dial Dialer) (*Router, error) {
	if dial == nil {
		dial = TCPDialer
	}

	r := &Router{obs: obs}
	for _, node := range cfg.Nodes {
		conn, err := dial(node.Address)
		if err != nil {
			r.closeAll()
			return nil, fmt.Errorf("node %q: connect %s: %w", node.Name, node.Address, err)
		}
		w := graphite.NewWriter(node.Name, conn, graphite.Options{
			Prefix:     node.Prefix,
			StoreRates: node.StoreRates,
		}, obs)
		r.writers = append(r.writers, w)
		r.closers = append(r.closers, w)
	}

	if cfg.Archive.ConnString != "" {
		db, err := sql.Open("postgres", cfg.Archive.ConnString)
		if err != nil {
			r.closeAll()
			return nil, fmt.Errorf("archive: %w", err)
		}
		r.writers = append(r.writers, archive.NewTimescale(db, cfg.Archive.Table, obs))
		r.closers = append(r.closers, db)
	}

	obs.SetGauge("graphite_nodes_connected", float64(len(cfg.Nodes)))
	return r, nil
}

// Register adds an extra writer, e.g. a caller-provided destination.
// Meant for wiring during construction, before Dispatch is in use.
func (r *Router) Register(w ports.Writer) {
	r.writers = append(r.writers, w)
	if c, ok := w.(io.Closer); ok {
		r.closers = append(r.closers, c)
	}
}

// Dispatch hands the batch to every writer. A failing writer is logged
// and skipped; the remaining writers still see the batch. Safe for
// concurrent use: the Router itself is immutable while operating, and
// each writer serializes its own stream.
func (r *Router) Dispatch(batch *domain.SampleBatch) {
	start := time.Now()
	for _, w := range r.writers {
		if err := w.Write(batch); err != nil {
			r.obs.LogError("writer_failed", err, ports.Field{Key: "writer", Value: w.Name()})
		}
	}
	r.obs.ObserveLatency("dispatch_latency_seconds", time.Since(start).Seconds())
}

// Writers exposes the registration set as (name, writer) pairs.
func (r *Router) Writers() []ports.Writer {
	out := make([]ports.Writer, len(r.writers))
	copy(out, r.writers)
	return out
}

// Close releases every owned stream. Required teardown is nothing more
// than this.
func (r *Router) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.obs.SetGauge("graphite_nodes_connected", 0)
	return errors.Join(errs...)
}

func (r *Router) closeAll() {
	for _, c := range r.closers {
		_ = c.Close()
	}
}
