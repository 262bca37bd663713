package graphite

import (
	"testing"

	"github.com/ghalamif/GraphiteFlow/internal/cdtime"
	"github.com/ghalamif/GraphiteFlow/internal/domain"
)

func rateBatch(secs uint64, interval uint64, v domain.Value) *domain.SampleBatch {
	return &domain.SampleBatch{
		Host:     "h",
		Plugin:   "if",
		Type:     "octets",
		Time:     cdtime.FromNanos(secs * 1_000_000_000),
		Interval: cdtime.FromNanos(interval * 1_000_000_000),
		Values:   []domain.NamedValue{{Name: "rx", Value: v}},
	}
}

func TestRateCacheFirstObservationIsNaN(t *testing.T) {
	c := NewRateCache()
	texts := c.Convert(rateBatch(100, 10, domain.Derive(500)))
	if texts[0] != "NaN" {
		t.Fatalf("expected NaN baseline, got %q", texts[0])
	}
}

func TestRateCacheDerive(t *testing.T) {
	c := NewRateCache()
	c.Convert(rateBatch(100, 10, domain.Derive(500)))
	texts := c.Convert(rateBatch(110, 10, domain.Derive(700)))
	if texts[0] != "20" {
		t.Fatalf("expected rate 20, got %q", texts[0])
	}
}

func TestRateCacheCounterWrap(t *testing.T) {
	c := NewRateCache()
	c.Convert(rateBatch(100, 10, domain.Counter(^uint64(0)-4)))
	texts := c.Convert(rateBatch(110, 10, domain.Counter(5)))
	// 10 increments over 10 seconds, across the 64-bit wrap.
	if texts[0] != "1" {
		t.Fatalf("expected wrap-aware rate 1, got %q", texts[0])
	}
}

func TestRateCacheGaugePassesThrough(t *testing.T) {
	c := NewRateCache()
	texts := c.Convert(rateBatch(100, 10, domain.Gauge(3.5)))
	if texts[0] != "3.5" {
		t.Fatalf("expected gauge untouched, got %q", texts[0])
	}
}

func TestRateCacheAbsoluteUsesInterval(t *testing.T) {
	c := NewRateCache()
	texts := c.Convert(rateBatch(100, 10, domain.Absolute(50)))
	if texts[0] != "5" {
		t.Fatalf("expected 50/10s = 5, got %q", texts[0])
	}
}

func TestRateCacheAbsoluteZeroInterval(t *testing.T) {
	c := NewRateCache()
	texts := c.Convert(rateBatch(100, 0, domain.Absolute(50)))
	if texts[0] != "NaN" {
		t.Fatalf("expected NaN for zero interval, got %q", texts[0])
	}
}

func TestRateCacheKeysPerDataSource(t *testing.T) {
	c := NewRateCache()
	batch := &domain.SampleBatch{
		Host:   "h",
		Plugin: "if",
		Type:   "octets",
		Time:   cdtime.FromNanos(100 * 1_000_000_000),
		Values: []domain.NamedValue{
			{Name: "rx", Value: domain.Derive(100)},
			{Name: "tx", Value: domain.Derive(1000)},
		},
	}
	c.Convert(batch)

	next := &domain.SampleBatch{
		Host:   "h",
		Plugin: "if",
		Type:   "octets",
		Time:   cdtime.FromNanos(105 * 1_000_000_000),
		Values: []domain.NamedValue{
			{Name: "rx", Value: domain.Derive(150)},
			{Name: "tx", Value: domain.Derive(2000)},
		},
	}
	texts := c.Convert(next)
	if texts[0] != "10" {
		t.Fatalf("expected rx rate 10, got %q", texts[0])
	}
	if texts[1] != "200" {
		t.Fatalf("expected tx rate 200, got %q", texts[1])
	}
}

func TestRateCacheNonMonotonicTimeIsNaN(t *testing.T) {
	c := NewRateCache()
	c.Convert(rateBatch(100, 10, domain.Derive(500)))
	texts := c.Convert(rateBatch(100, 10, domain.Derive(700)))
	if texts[0] != "NaN" {
		t.Fatalf("expected NaN for non-advancing clock, got %q", texts[0])
	}
}
