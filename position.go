package geovu

import (
	"fmt"
	"time"
)

// position.go implements the Canonical Position and Canonical Time types
// from spec §3. Unlike the teacher engine's math/lin package (quaternions
// and 4x4 matrices feeding a GPU pipeline — out of scope per spec §1,
// since the globe/camera transform belongs to the external renderer) these
// are plain geographic coordinates; the host renderer owns projection.

// Position is a geographic coordinate: longitude/latitude in degrees,
// height in meters above the ellipsoid.
type Position struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Height    float64 `json:"height"`
}

// Valid reports whether the position is within the documented ranges
// (spec §3: longitude ∈ [-180,180], latitude ∈ [-90,90]).
func (p Position) Valid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

func (p Position) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.2f)", p.Longitude, p.Latitude, p.Height)
}

// lerpPosition linearly interpolates between a and b by fraction f in
// [0,1]. Height is interpolated linearly; longitude/latitude interpolation
// is linear in degree-space, adequate for the short, bounded trajectory
// legs this engine evaluates (spec §4.D "default Lagrange degree 1-2").
func lerpPosition(a, b Position, f float64) Position {
	return Position{
		Longitude: a.Longitude + (b.Longitude-a.Longitude)*f,
		Latitude:  a.Latitude + (b.Latitude-a.Latitude)*f,
		Height:    a.Height + (b.Height-a.Height)*f,
	}
}

// AvailabilityWindow is the interval during which a feature is eligible
// to draw (spec §3). A nil *AvailabilityWindow means "always available".
type AvailabilityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within [Start, End] inclusive.
func (w *AvailabilityWindow) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// Valid reports whether Start <= End (spec §3 invariant on windows).
func (w *AvailabilityWindow) Valid() bool {
	if w == nil {
		return true
	}
	return !w.Start.After(w.End)
}
