package geovu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPositionValid(t *testing.T) {
	assert.True(t, Position{Longitude: 116.4, Latitude: 39.9}.Valid())
	assert.False(t, Position{Longitude: 181, Latitude: 0}.Valid())
	assert.False(t, Position{Longitude: 0, Latitude: -91}.Valid())
}

func TestLerpPosition(t *testing.T) {
	a := Position{Longitude: 0, Latitude: 0, Height: 0}
	b := Position{Longitude: 1, Latitude: 0, Height: 100}

	mid := lerpPosition(a, b, 0.5)

	assert.InDelta(t, 0.5, mid.Longitude, 1e-9)
	assert.InDelta(t, 50, mid.Height, 1e-9)
}

func TestNilAvailabilityWindowAlwaysContains(t *testing.T) {
	var w *AvailabilityWindow
	assert.True(t, w.Contains(time.Now()))
	assert.True(t, w.Valid())
}

// Availability gating scenario (spec §8 scenario 3): invisible one second
// before start, visible mid-window.
func TestAvailabilityWindowBoundaryScenario(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	w := &AvailabilityWindow{Start: start, End: end}

	assert.False(t, w.Contains(start.Add(-1*time.Second)))
	assert.True(t, w.Contains(start.Add(30*time.Minute)))
	assert.True(t, w.Contains(start))
	assert.True(t, w.Contains(end))
	assert.False(t, w.Contains(end.Add(time.Second)))
}

func TestAvailabilityWindowValid(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := &AvailabilityWindow{Start: start, End: start.Add(time.Hour)}
	invalid := &AvailabilityWindow{Start: start.Add(time.Hour), End: start}

	assert.True(t, valid.Valid())
	assert.False(t, invalid.Valid())
}
