package cdtime

import (
	"testing"
	"time"
)

// Vectors taken from the daemon's own time conversion test suite.
var referenceVectors = []struct {
	nanos uint64
	fixed Time
}{
	{1439981652801860766, 1546168526406004689},
	{1439981836985281914, 1546168724171447263},
	{1439981880053705608, 1546168770415815077},
}

func TestFromNanosReferenceVectors(t *testing.T) {
	for _, v := range referenceVectors {
		if got := FromNanos(v.nanos); got != v.fixed {
			t.Fatalf("FromNanos(%d) = %d, want %d", v.nanos, got, v.fixed)
		}
	}
}

func TestNanosReferenceVectors(t *testing.T) {
	for _, v := range referenceVectors {
		if got := v.fixed.Nanos(); got != v.nanos {
			t.Fatalf("Time(%d).Nanos() = %d, want %d", v.fixed, got, v.nanos)
		}
	}
}

func TestRoundTripWithinOneNanosecond(t *testing.T) {
	inputs := []uint64{
		0,
		1,
		999_999_999,
		1_000_000_000,
		1_000_000_001,
		1439981652801860766,
		1606348349831941694,
	}
	for _, ns := range inputs {
		got := FromNanos(ns).Nanos()
		diff := int64(got) - int64(ns)
		if diff < -1 || diff > 1 {
			t.Fatalf("round-trip of %d drifted by %d ns", ns, diff)
		}
	}
}

func TestRoundTripIdempotent(t *testing.T) {
	// After one encode/decode cycle the value must be a fixed point of
	// the conversion pair.
	for _, v := range referenceVectors {
		once := FromNanos(v.nanos).Nanos()
		twice := FromNanos(once).Nanos()
		if once != twice {
			t.Fatalf("round-trip of %d not idempotent: %d then %d", v.nanos, once, twice)
		}
	}
}

func TestOrderingPreserved(t *testing.T) {
	prev := FromNanos(0)
	for ns := uint64(0); ns < 5_000; ns += 7 {
		cur := FromNanos(ns)
		if cur < prev {
			t.Fatalf("ordering violated at %d ns: %d < %d", ns, cur, prev)
		}
		prev = cur
	}
}

func TestTimeDecodesToUTC(t *testing.T) {
	ts := FromNanos(1_000_000_000).Time()
	want := time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("expected %s, got %s", want, ts)
	}
	if ts.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", ts.Location())
	}
}

func TestFromTimeRoundTrip(t *testing.T) {
	ts := time.Date(2015, 8, 19, 11, 34, 12, 801860766, time.UTC)
	got := FromTime(ts).Time()
	if d := got.Sub(ts); d < -time.Nanosecond || d > time.Nanosecond {
		t.Fatalf("calendar round-trip drifted by %s", d)
	}
}

func TestFromDurationRejectsNegative(t *testing.T) {
	if _, err := FromDuration(-time.Second); err != ErrNegativeDuration {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := 10*time.Second + 250*time.Millisecond
	fixed, err := FromDuration(d)
	if err != nil {
		t.Fatalf("FromDuration: %v", err)
	}
	if got := fixed.Duration(); got != d {
		t.Fatalf("expected %s, got %s", d, got)
	}
}

func TestUnixTruncatesFraction(t *testing.T) {
	fixed := FromNanos(1_999_999_999)
	if got := fixed.Unix(); got != 1 {
		t.Fatalf("expected 1 second, got %d", got)
	}
}

func TestSubUsesIntegerDifference(t *testing.T) {
	a := FromNanos(10_000_000_000)
	b := FromNanos(12_500_000_000)
	if got := b.Sub(a); got != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s, got %s", got)
	}
}
