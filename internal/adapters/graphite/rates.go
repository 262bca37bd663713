package graphite

import (
	"math"
	"strconv"
	"sync"

	"github.com/ghalamif/GraphiteFlow/internal/cdtime"
	"github.com/ghalamif/GraphiteFlow/internal/domain"
)

// RateCache turns cumulative values into per-second rates, keeping the
// previous observation per data source. Gauges pass through untouched.
// The first observation of a cumulative source has no baseline and
// yields NaN, which goes onto the wire as-is, matching the daemon.
type RateCache struct {
	mu   sync.Mutex
	prev map[string]rateState
}

type rateState struct {
	time    cdtime.Time
	counter uint64
	derive  int64
}

func NewRateCache() *RateCache {
	return &RateCache{prev: make(map[string]rateState)}
}

// Convert returns formatted value texts, index-aligned with
// batch.Values.
func (c *RateCache) Convert(batch *domain.SampleBatch) []string {
	id := Identifier("", batch)

	c.mu.Lock()
	defer c.mu.Unlock()

	texts := make([]string, len(batch.Values))
	for i, nv := range batch.Values {
		key := id + "/" + nv.Name
		switch v := nv.Value.(type) {
		case domain.Gauge:
			texts[i] = v.String()
		case domain.Absolute:
			// Absolute sources reset on every read; the divisor is the
			// sampling interval, not the gap to a previous sample.
			texts[i] = formatRate(float64(v), batch.Interval.Seconds())
		case domain.Derive:
			st, seen := c.prev[key]
			rate := math.NaN()
			if seen && batch.Time > st.time {
				rate = float64(int64(v)-st.derive) / (batch.Time - st.time).Seconds()
			}
			c.prev[key] = rateState{time: batch.Time, derive: int64(v)}
			texts[i] = formatFloat(rate)
		case domain.Counter:
			st, seen := c.prev[key]
			rate := math.NaN()
			if seen && batch.Time > st.time {
				// Unsigned subtraction absorbs 64-bit wrap-around.
				rate = float64(uint64(v)-st.counter) / (batch.Time - st.time).Seconds()
			}
			c.prev[key] = rateState{time: batch.Time, counter: uint64(v)}
			texts[i] = formatFloat(rate)
		default:
			texts[i] = nv.Value.String()
		}
	}
	return texts
}

func formatRate(v, dt float64) string {
	if dt <= 0 {
		return formatFloat(math.NaN())
	}
	return formatFloat(v / dt)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
