package graphite

import (
	"io"
	"sync"

	"github.com/ghalamif/GraphiteFlow/internal/domain"
	"github.com/ghalamif/GraphiteFlow/internal/ports"
)

// LineWriter serializes access to a single non-thread-safe byte stream.
// The mutex is the only shared-mutable boundary on the write path: one
// goroutine holds it per line, so concurrent callers never interleave
// bytes. A failed write is logged and counted, never propagated; the
// stream is not reconnected. Reconnect/backoff would go here if we ever
// grow it.
type LineWriter struct {
	mu   sync.Mutex
	w    io.Writer
	node string
	obs  ports.Observability
}

// NewLineWriter takes exclusive ownership of w. No other component may
// touch the raw stream afterwards.
func NewLineWriter(node string, w io.Writer, obs ports.Observability) *LineWriter {
	return &LineWriter{w: w, node: node, obs: obs}
}

// WriteLine delivers one fully-formed wire line in a single write.
func (lw *LineWriter) WriteLine(line string) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, err := io.WriteString(lw.w, line); err != nil {
		lw.obs.LogError("graphite_write_failed", err, ports.Field{Key: "node", Value: lw.node})
		lw.obs.IncCounter("graphite_write_errors_total", 1)
		return
	}
	lw.obs.IncCounter("graphite_lines_sent_total", 1)
}

// Options tune one graphite destination.
type Options struct {
	// Prefix is prepended verbatim to every identifier.
	Prefix string
	// StoreRates converts cumulative kinds to per-second rates before
	// formatting, the way the daemon's StoreRates option does.
	StoreRates bool
}

// Writer is one registered graphite destination: it builds wire lines
// from a batch and hands them to its LineWriter. It implements
// ports.Writer.
type Writer struct {
	name  string
	opts  Options
	lw    *LineWriter
	rates *RateCache
	conn  io.Closer
}

// NewWriter wires a destination around an established connection. The
// connection is closed by Close; delivery failures in between are
// swallowed by the LineWriter.
func NewWriter(name string, conn io.WriteCloser, opts Options, obs ports.Observability) *Writer {
	w := &Writer{
		name: name,
		opts: opts,
		lw:   NewLineWriter(name, conn, obs),
		conn: conn,
	}
	if opts.StoreRates {
		w.rates = NewRateCache()
	}
	return w
}

func (w *Writer) Name() string { return w.name }

// Write formats and delivers every value of the batch. It always
// returns nil: per-line failures are non-fatal and already accounted
// for by the LineWriter.
func (w *Writer) Write(batch *domain.SampleBatch) error {
	if len(batch.Values) == 0 {
		return nil
	}

	var texts []string
	if w.rates != nil {
		texts = w.rates.Convert(batch)
	} else {
		texts = make([]string, len(batch.Values))
		for i, v := range batch.Values {
			texts[i] = v.Value.String()
		}
	}

	for _, line := range BuildLines(w.opts.Prefix, batch, texts) {
		w.lw.WriteLine(line)
	}
	return nil
}

// Close releases the owned stream.
func (w *Writer) Close() error {
	if w.conn == nil {
		return nil
	}
	return w.conn.Close()
}

var _ ports.Writer = (*Writer)(nil)
