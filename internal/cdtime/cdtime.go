// Package cdtime converts between the collection daemon's fixed-point
// time encoding and Go's time types.
//
// The daemon stores absolute time at 2^-30 second resolution: the most
// significant 34 bits hold whole seconds, the least significant 30 bits
// hold the sub-second part in steps very close to a nanosecond. Storing
// time this way keeps comparison and difference as plain integer
// operations, the same as with time_t.
package cdtime

import (
	"errors"
	"time"
)

// Time is the daemon's 64-bit fixed-point timestamp. The zero value is
// the Unix epoch. Ordinary integer comparison and subtraction order and
// difference Time values chronologically.
type Time uint64

// ErrNegativeDuration is returned by FromDuration: the encoding has no
// sign bit, so negative spans are rejected rather than saturated.
var ErrNegativeDuration = errors.New("cdtime: negative duration not representable")

const (
	fracBits       = 30
	fracMask       = 1<<fracBits - 1
	nanosPerSecond = 1_000_000_000
)

// FromNanos encodes an epoch nanosecond count. The fractional part is
// rounded half-up so that repeated round-trips do not drift.
func FromNanos(ns uint64) Time {
	secs := ns / nanosPerSecond
	frac := ((ns%nanosPerSecond)<<fracBits + nanosPerSecond/2) / nanosPerSecond
	return Time(secs<<fracBits | frac)
}

// Nanos decodes t back into epoch nanoseconds, rounding half-up.
func (t Time) Nanos() uint64 {
	secs := uint64(t) >> fracBits
	frac := ((uint64(t)&fracMask)*nanosPerSecond + 1<<(fracBits-1)) >> fracBits
	return secs*nanosPerSecond + frac
}

// FromDuration encodes a time span. Negative spans return
// ErrNegativeDuration.
func FromDuration(d time.Duration) (Time, error) {
	if d < 0 {
		return 0, ErrNegativeDuration
	}
	return FromNanos(uint64(d)), nil
}

// Duration reinterprets t as a span at nanosecond resolution.
func (t Time) Duration() time.Duration {
	return time.Duration(t.Nanos())
}

// FromTime encodes a calendar timestamp.
func FromTime(ts time.Time) Time {
	return FromNanos(uint64(ts.UnixNano()))
}

// Time decodes t into a calendar timestamp in UTC.
func (t Time) Time() time.Time {
	ns := t.Nanos()
	return time.Unix(int64(ns/nanosPerSecond), int64(ns%nanosPerSecond)).UTC()
}

// Unix returns whole seconds since the epoch, truncating the fraction.
func (t Time) Unix() int64 {
	return int64(uint64(t) >> fracBits)
}

// Sub returns the span t-u. Callers must ensure u <= t; the encoding
// cannot express a negative difference.
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(t.Nanos() - u.Nanos())
}

// Seconds returns t as floating-point seconds. Handy for rate math
// where sub-second interval precision matters.
func (t Time) Seconds() float64 {
	return float64(t) / float64(uint64(1)<<fracBits)
}
