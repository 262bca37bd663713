package graphiteflow

import (
	"fmt"

	"github.com/ghalamif/GraphiteFlow/internal/domain"
)

// BatchFunc consumes one sample batch.
type BatchFunc func(*SampleBatch) error

// NewCallbackWriter adapts a plain function into a full Writer so
// callers can plug arbitrary destinations without defining structs.
func NewCallbackWriter(name string, fn BatchFunc) Writer {
	if name == "" {
		name = "callback"
	}
	return &callbackWriter{name: name, fn: fn}
}

type callbackWriter struct {
	name string
	fn   BatchFunc
}

func (w *callbackWriter) Write(batch *domain.SampleBatch) error {
	if w.fn == nil {
		return fmt.Errorf("callback writer %q: nil handler", w.name)
	}
	return w.fn(batch)
}

func (w *callbackWriter) Name() string { return w.name }
