package geovu

import (
	"math"
	"sort"
	"time"
)

// trajectory.go implements the trajectory graphic entity (spec §3, §4.D):
// a time-ordered sample sequence with piecewise-linear position
// interpolation, lead/trail trimming, and optional extrapolation at the
// ends. The interpolation search mirrors the teacher's animation frame
// lookup (animation.go's movement/frame indexing) generalized from a
// fixed-rate frame index to a sorted real-valued time axis via
// sort.Search, the same structure timeline's Availability index uses.

// TrajectorySample is one (time, position) keyframe, with optional
// free-form properties carried alongside (e.g. speed, heading source
// data) that do not participate in interpolation.
type TrajectorySample struct {
	Time     time.Time
	Position Position
	Props    map[string]any
}

// TrajectoryFeature is a moving feature defined by time-ordered samples.
type TrajectoryFeature struct {
	baseFeature
	samples             []TrajectorySample
	InterpolationDegree int
	LeadTime            time.Duration
	TrailTime           time.Duration
	Extrapolate         bool

	derivedValid  bool
	totalDistance float64
}

// NewTrajectoryFeature creates a trajectory from samples, which must
// already be sorted by Time and contain at least two samples (spec §3
// invariant 3). A caller with unsorted input should sort before calling;
// this constructor only validates, it does not silently reorder, so
// callers can detect malformed upstream data.
func NewTrajectoryFeature(id FeatureID, name string, samples []TrajectorySample) (*TrajectoryFeature, error) {
	if len(samples) < 2 {
		return nil, newConfigError("trajectory", "at least two samples required", map[string]any{"count": len(samples)})
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Before(samples[i-1].Time) {
			return nil, newConfigError("trajectory", "samples must be time-ordered", map[string]any{"index": i})
		}
	}
	if id == "" {
		id = newFeatureID()
	}
	t := &TrajectoryFeature{
		baseFeature:         newBaseFeature(KindTrajectory, id, name),
		samples:             append([]TrajectorySample(nil), samples...),
		InterpolationDegree: 1,
	}
	t.self = t
	return t, nil
}

// Samples returns a copy of the sample sequence.
func (t *TrajectoryFeature) Samples() []TrajectorySample {
	return append([]TrajectorySample(nil), t.samples...)
}

// SampleCount reports how many keyframes the trajectory holds.
func (t *TrajectoryFeature) SampleCount() int { return len(t.samples) }

// Duration is the span between the first and last sample times.
func (t *TrajectoryFeature) Duration() time.Duration {
	if len(t.samples) == 0 {
		return 0
	}
	return t.samples[len(t.samples)-1].Time.Sub(t.samples[0].Time)
}

// TotalDistance sums the great-circle distance between consecutive
// samples, cached until the sample set next mutates.
func (t *TrajectoryFeature) TotalDistance() float64 {
	t.ensureDerived()
	return t.totalDistance
}

func (t *TrajectoryFeature) ensureDerived() {
	if t.derivedValid {
		return
	}
	t.totalDistance = 0
	for i := 1; i < len(t.samples); i++ {
		t.totalDistance += haversineMeters(t.samples[i-1].Position, t.samples[i].Position)
	}
	t.derivedValid = true
}

// PositionAt interpolates the trajectory's position at t. Times before
// the first sample or after the last return the boundary sample's
// position unless Extrapolate is set, in which case the nearest leg's
// heading is extended linearly (spec §4.D "extrapolate at the ends").
// The bool result reports whether t fell within [start-LeadTime,
// end+TrailTime]; outside that window the returned position is not
// meaningful.
func (t *TrajectoryFeature) PositionAt(at time.Time) (Position, bool) {
	if len(t.samples) == 0 {
		return Position{}, false
	}
	first, last := t.samples[0], t.samples[len(t.samples)-1]
	windowStart := first.Time.Add(-t.LeadTime)
	windowEnd := last.Time.Add(t.TrailTime)
	if at.Before(windowStart) || at.After(windowEnd) {
		return Position{}, false
	}
	if !at.After(first.Time) {
		if !t.Extrapolate || !at.Before(first.Time) {
			return first.Position, true
		}
		return t.extrapolate(first, t.samples[minInt(1, len(t.samples)-1)], at), true
	}
	if !at.Before(last.Time) {
		if !t.Extrapolate || !at.After(last.Time) {
			return last.Position, true
		}
		prev := t.samples[maxInt(0, len(t.samples)-2)]
		return t.extrapolate(prev, last, at), true
	}

	i := sort.Search(len(t.samples), func(i int) bool { return t.samples[i].Time.After(at) })
	a, b := t.samples[i-1], t.samples[i]
	span := b.Time.Sub(a.Time)
	if span <= 0 {
		return a.Position, true
	}
	f := float64(at.Sub(a.Time)) / float64(span)
	return lerpPosition(a.Position, b.Position, f), true
}

// extrapolate extends the a->b leg's heading linearly past its bounds.
func (t *TrajectoryFeature) extrapolate(a, b TrajectorySample, at time.Time) Position {
	span := b.Time.Sub(a.Time)
	if span <= 0 {
		return a.Position
	}
	f := float64(at.Sub(a.Time)) / float64(span)
	return lerpPosition(a.Position, b.Position, f)
}

// BearingAt returns the initial bearing in degrees (0=north, clockwise)
// of the leg containing at, used to orient billboards/models that track
// heading.
func (t *TrajectoryFeature) BearingAt(at time.Time) float64 {
	if len(t.samples) < 2 {
		return 0
	}
	i := sort.Search(len(t.samples), func(i int) bool { return t.samples[i].Time.After(at) })
	if i <= 0 {
		i = 1
	}
	if i >= len(t.samples) {
		i = len(t.samples) - 1
	}
	a, b := t.samples[i-1], t.samples[i]
	return bearing(a.Position, b.Position)
}

func bearing(a, b Position) float64 {
	lat1, lat2 := radians(a.Latitude), radians(b.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (t *TrajectoryFeature) AddTo(eng *Engine, layer *Layer) Feature {
	t.attach(eng, layer, t)
	return t
}

func (t *TrajectoryFeature) Remove() Feature {
	t.detach()
	return t
}

func (t *TrajectoryFeature) createVisual() DrawHint {
	positions := make([]Position, len(t.samples))
	for i, s := range t.samples {
		positions[i] = s.Position
	}
	return DrawHint{
		Kind:        KindTrajectory,
		MaterialSig: materialSignature(t.hdr.Style),
		Animated:    true,
		Positions:   positions,
	}
}

func (t *TrajectoryFeature) updatePositionsHook() {}
func (t *TrajectoryFeature) updateStyleHook()     {}

func (t *TrajectoryFeature) ToJSON() ([]byte, error) {
	samples := make([]TrajectorySampleJSON, len(t.samples))
	for i, s := range t.samples {
		samples[i] = TrajectorySampleJSON{Time: s.Time, Position: s.Position, Props: s.Props}
	}
	doc := FeatureJSON{
		Type:                KindTrajectory,
		ID:                  t.hdr.ID,
		Name:                t.hdr.Name,
		Show:                t.hdr.Visible,
		Samples:             samples,
		Style:               t.hdr.Style,
		Properties:          t.hdr.Properties,
		InterpolationDegree: t.InterpolationDegree,
		LeadTime:            t.LeadTime,
		TrailTime:           t.TrailTime,
		Extrapolate:         t.Extrapolate,
	}
	return encodeFeatureJSON(doc)
}
