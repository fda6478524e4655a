// Package timeline implements the Time Manager, component F: a
// play/pause/stop/seek state machine driving a current time cursor, plus
// an Availability interval index so layers and the engine can answer
// "what's eligible right now" in O(log N + m), m being the intervals that
// have started by then, instead of scanning every feature (spec §4.F).
//
// Grounded on the root package's Lifecycle mixin for the event surface
// (currentTimeChanged) and on the teacher's timing.go/profile.go
// "Zero() every update, Dump() on demand" accounting style for Clock's
// own bookkeeping.
package timeline

import (
	"sort"
	"time"
)

// State is the Clock's play state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Listener receives the current time whenever it changes.
type Listener func(current time.Time)

// Clock drives a current-time cursor across a bounded [Start, End] range
// at a configurable multiplier, forward or backward (spec §4.F).
type Clock struct {
	start, end time.Time
	current    time.Time
	multiplier float64
	state      State
	loop       bool

	listeners []Listener
}

// NewClock creates a Clock ranging over [start, end], initially stopped
// and positioned at start.
func NewClock(start, end time.Time) *Clock {
	return &Clock{start: start, end: end, current: start, multiplier: 1}
}

// SetTimeRange changes the bounds, clamping the current time into range.
func (c *Clock) SetTimeRange(start, end time.Time) {
	c.start, c.end = start, end
	c.SetCurrentTime(c.current)
}

// TimeRange returns the configured bounds.
func (c *Clock) TimeRange() (start, end time.Time) { return c.start, c.end }

// SetCurrentTime seeks the cursor, clamping into [start, end], and fires
// currentTimeChanged.
func (c *Clock) SetCurrentTime(t time.Time) {
	if t.Before(c.start) {
		t = c.start
	}
	if t.After(c.end) {
		t = c.end
	}
	c.current = t
	c.notify()
}

// CurrentTime returns the cursor position.
func (c *Clock) CurrentTime() time.Time { return c.current }

// SetMultiplier changes the playback rate; negative values play backward.
func (c *Clock) SetMultiplier(m float64) { c.multiplier = m }

// Multiplier returns the current playback rate.
func (c *Clock) Multiplier() float64 { return c.multiplier }

// SetLoop controls whether reaching a bound while Playing wraps back to
// the opposite bound instead of stopping.
func (c *Clock) SetLoop(loop bool) { c.loop = loop }

// Play transitions to Playing from any state.
func (c *Clock) Play() { c.state = Playing }

// Pause transitions to Paused, holding the current cursor position.
func (c *Clock) Pause() {
	if c.state == Playing {
		c.state = Paused
	}
}

// Stop halts playback and resets the cursor to start.
func (c *Clock) Stop() {
	c.state = Stopped
	c.SetCurrentTime(c.start)
}

// State reports the current play state.
func (c *Clock) State() State { return c.state }

// Advance moves the cursor forward by dt scaled by Multiplier, only when
// Playing. At a bound: wraps if SetLoop(true), otherwise stops (spec
// §4.F "reaching the end while playing stops or loops").
func (c *Clock) Advance(dt time.Duration) {
	if c.state != Playing {
		return
	}
	step := time.Duration(float64(dt) * c.multiplier)
	next := c.current.Add(step)
	switch {
	case step >= 0 && next.After(c.end):
		if c.loop {
			c.current = c.start
		} else {
			c.current = c.end
			c.state = Stopped
		}
	case step < 0 && next.Before(c.start):
		if c.loop {
			c.current = c.end
		} else {
			c.current = c.start
			c.state = Stopped
		}
	default:
		c.current = next
	}
	c.notify()
}

// OnCurrentTimeChanged registers a listener invoked after every cursor
// move (seek or Advance).
func (c *Clock) OnCurrentTimeChanged(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Clock) notify() {
	for _, l := range c.listeners {
		l(c.current)
	}
}

// Interval is one entry in an Availability index: a closed, both-ends-
// inclusive [Start, End] window tagged with an opaque key the caller defines
// (typically a feature id).
type Interval struct {
	Start time.Time
	End   time.Time
	Key   any
}

// Availability is a sorted-by-start interval index answering "which keys
// are eligible at t" (spec §4.F), built once from a batch of intervals
// and queried repeatedly as the clock advances. The binary search prunes
// every interval that starts after t in O(log N); the remaining
// candidates are scanned once to check End, so the query is O(log N + m)
// where m is the number of intervals that have started by t (not just
// the ones still open) — good enough when availability windows don't
// pile up by the thousands at a single point on the timeline.
type Availability struct {
	intervals []Interval
}

// NewAvailability builds an index over intervals, sorted by Start.
func NewAvailability(intervals []Interval) *Availability {
	sorted := append([]Interval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	return &Availability{intervals: sorted}
}

// At returns every interval's Key whose [Start, End] contains t. The
// binary search locates the first interval whose Start is after t; only
// the intervals before it are scanned, since the index is sorted by Start
// and nothing from there on can contain t.
func (a *Availability) At(t time.Time) []any {
	i := sort.Search(len(a.intervals), func(i int) bool { return a.intervals[i].Start.After(t) })
	out := []any{}
	for j := 0; j < i; j++ {
		iv := a.intervals[j]
		if !t.Before(iv.Start) && !t.After(iv.End) {
			out = append(out, iv.Key)
		}
	}
	return out
}

// Len reports how many intervals are indexed.
func (a *Availability) Len() int { return len(a.intervals) }
