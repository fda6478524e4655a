package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refRange() (time.Time, time.Time) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.Add(time.Hour)
}

func TestClockStartsStoppedAtStart(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)

	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, start, c.CurrentTime())
}

func TestClockPlayAdvancesCursor(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)

	c.Play()
	c.Advance(10 * time.Second)

	assert.Equal(t, Playing, c.State())
	assert.Equal(t, start.Add(10*time.Second), c.CurrentTime())
}

func TestClockAdvanceNoOpWhenNotPlaying(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)

	c.Advance(10 * time.Second)

	assert.Equal(t, start, c.CurrentTime())
}

func TestClockPauseHoldsCursor(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)
	c.Play()
	c.Advance(5 * time.Second)

	c.Pause()
	c.Advance(5 * time.Second)

	assert.Equal(t, Paused, c.State())
	assert.Equal(t, start.Add(5*time.Second), c.CurrentTime())
}

func TestClockStopResetsToStart(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)
	c.Play()
	c.Advance(30 * time.Minute)

	c.Stop()

	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, start, c.CurrentTime())
}

func TestClockReachingEndStopsWithoutLoop(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)
	c.Play()

	c.Advance(2 * time.Hour)

	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, end, c.CurrentTime())
}

func TestClockReachingEndLoopsWhenEnabled(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)
	c.SetLoop(true)
	c.Play()

	c.Advance(2 * time.Hour)

	assert.Equal(t, Playing, c.State())
	assert.Equal(t, start, c.CurrentTime())
}

func TestClockNegativeMultiplierPlaysBackward(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)
	c.SetCurrentTime(start.Add(30 * time.Minute))
	c.SetMultiplier(-1)
	c.Play()

	c.Advance(10 * time.Minute)

	assert.Equal(t, start.Add(20*time.Minute), c.CurrentTime())
}

func TestClockSetCurrentTimeClampsToRange(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)

	c.SetCurrentTime(start.Add(-time.Hour))
	assert.Equal(t, start, c.CurrentTime())

	c.SetCurrentTime(end.Add(time.Hour))
	assert.Equal(t, end, c.CurrentTime())
}

func TestClockNotifiesListenersOnSeekAndAdvance(t *testing.T) {
	start, end := refRange()
	c := NewClock(start, end)
	var seen []time.Time
	c.OnCurrentTimeChanged(func(cur time.Time) { seen = append(seen, cur) })

	c.SetCurrentTime(start.Add(time.Minute))
	c.Play()
	c.Advance(time.Minute)

	require.Len(t, seen, 2)
	assert.Equal(t, start.Add(2*time.Minute), seen[1])
}

func TestAvailabilityAtReturnsOverlappingKeys(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	av := NewAvailability([]Interval{
		{Start: base, End: base.Add(time.Hour), Key: "a"},
		{Start: base.Add(30 * time.Minute), End: base.Add(2 * time.Hour), Key: "b"},
		{Start: base.Add(3 * time.Hour), End: base.Add(4 * time.Hour), Key: "c"},
	})

	keys := av.At(base.Add(45 * time.Minute))

	assert.ElementsMatch(t, []any{"a", "b"}, keys)
}

func TestAvailabilityAtBoundaryIsInclusive(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	av := NewAvailability([]Interval{{Start: base, End: base.Add(time.Hour), Key: "a"}})

	assert.Equal(t, []any{"a"}, av.At(base))
	assert.Equal(t, []any{"a"}, av.At(base.Add(time.Hour)))
	assert.Empty(t, av.At(base.Add(time.Hour+time.Second)))
}

func TestAvailabilityLenReportsIntervalCount(t *testing.T) {
	av := NewAvailability([]Interval{{Key: "a"}, {Key: "b"}})

	assert.Equal(t, 2, av.Len())
}
