package meter

// meter.go implements a byte-rate meter: bytes are accumulated into
// one-second buckets, and completed buckets feed a fixed-capacity window
// (numbers.Queue) that yields current, minimum, maximum and average rates
// over the last windowSeconds seconds.
//
// Seconds with no traffic count as zero-byte buckets, so an idle stream's
// rates decay instead of freezing at the last burst. The clock is a struct
// field so tests can drive time explicitly.
//
// Single-owner, not safe for concurrent use without external locking.

import (
	"time"

	"github.com/rony4d/go-streamkit/numbers"
)

// DefaultWindowSeconds is the window used when New gets a non-positive size.
const DefaultWindowSeconds = 10

type Meter struct {
	window *numbers.Queue
	// bucket is the unix second currently being filled; 0 means no traffic
	// has been recorded yet.
	bucket int64
	// current is the byte count of the open bucket.
	current int64
	// last is the byte count of the most recently completed bucket.
	last float64

	// now is the clock; tests replace it.
	now func() time.Time
}

// New creates a meter averaging over the given number of seconds.
func New(windowSeconds int) *Meter {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	return &Meter{
		window: numbers.NewQueue(windowSeconds),
		now:    time.Now,
	}
}

// SetClock replaces the meter's time source. Intended for tests.
func (m *Meter) SetClock(now func() time.Time) {
	m.now = now
}

// Update records n bytes against the current second.
func (m *Meter) Update(n int) {
	m.roll()
	m.current += int64(n)
}

// roll closes every bucket older than the current second, pushing completed
// totals (including zero-traffic seconds) into the window.
func (m *Meter) roll() {
	sec := m.now().Unix()
	if m.bucket == 0 {
		m.bucket = sec
		return
	}
	// After an idle gap longer than the whole window every stat is zero
	// anyway; jump instead of pushing thousands of empty buckets.
	if sec-m.bucket > int64(m.window.Cap()) {
		m.window.Clear()
		m.last = 0
		m.current = 0
		m.bucket = sec
		return
	}
	for m.bucket < sec {
		m.last = float64(m.current)
		m.window.Push(m.last)
		m.current = 0
		m.bucket++
	}
}

// Rate returns the bytes/second of the most recently completed second.
func (m *Meter) Rate() float64 {
	m.roll()
	return m.last
}

// AvgRate returns the average bytes/second over the window.
func (m *Meter) AvgRate() float64 {
	m.roll()
	return m.window.Avg()
}

// MinRate returns the slowest completed second in the window.
func (m *Meter) MinRate() float64 {
	m.roll()
	return m.window.Min()
}

// MaxRate returns the fastest completed second in the window.
func (m *Meter) MaxRate() float64 {
	m.roll()
	return m.window.Max()
}

// Reset drops all accumulated state.
func (m *Meter) Reset() {
	m.window.Clear()
	m.bucket = 0
	m.current = 0
	m.last = 0
}
