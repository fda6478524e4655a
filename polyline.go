package geovu

import "math"

// polyline.go implements the polyline graphic entity (spec §3, §4.D):
// an ordered vertex chain with width/material/clampToGround, derived
// length/centerOfMass, and point-editing operations bounded by
// min/maxPointNum with warn-on-violation semantics instead of errors
// (spec §7 "validation... warn and drop").

const (
	// defaultMinPolylinePoints matches spec §3's polyline invariant
	// (positions[] >= 2).
	defaultMinPolylinePoints = 2
	defaultMaxPolylinePoints = 1 << 20 // effectively unbounded unless overridden.
)

// PolylineFeature is a connected sequence of positions.
type PolylineFeature struct {
	baseFeature
	positions     []Position
	ClampToGround bool
	MinPointNum   int
	MaxPointNum   int

	lengthValid bool
	length      float64
	center      Position
}

// NewPolylineFeature creates a polyline from at least two positions.
func NewPolylineFeature(id FeatureID, name string, positions []Position) *PolylineFeature {
	if id == "" {
		id = newFeatureID()
	}
	p := &PolylineFeature{
		baseFeature: newBaseFeature(KindPolyline, id, name),
		positions:   append([]Position(nil), positions...),
		MinPointNum: defaultMinPolylinePoints,
		MaxPointNum: defaultMaxPolylinePoints,
	}
	p.self = p
	return p
}

// Positions returns a copy of the current vertex chain.
func (p *PolylineFeature) Positions() []Position {
	return append([]Position(nil), p.positions...)
}

// SetPositions replaces the whole chain, invalidating cached derived values.
func (p *PolylineFeature) SetPositions(positions []Position) {
	p.positions = append([]Position(nil), positions...)
	p.lengthValid = false
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

// AddPoint appends a vertex unless MaxPointNum would be exceeded, in which
// case it warns and is a no-op (spec §4.D).
func (p *PolylineFeature) AddPoint(pos Position) {
	if len(p.positions) >= p.MaxPointNum {
		p.log.warn("polyline", "addPoint", map[string]any{"id": p.hdr.ID, "max": p.MaxPointNum},
			"maxPointNum exceeded, point not added")
		return
	}
	p.positions = append(p.positions, pos)
	p.lengthValid = false
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

// RemovePoint removes the vertex at index unless doing so would drop below
// MinPointNum, in which case it warns and is a no-op.
func (p *PolylineFeature) RemovePoint(index int) {
	if index < 0 || index >= len(p.positions) {
		return
	}
	if len(p.positions)-1 < p.MinPointNum {
		p.log.warn("polyline", "removePoint", map[string]any{"id": p.hdr.ID, "min": p.MinPointNum},
			"minPointNum violated, point not removed")
		return
	}
	p.positions = append(p.positions[:index], p.positions[index+1:]...)
	p.lengthValid = false
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

// MovePoint relocates the vertex at index.
func (p *PolylineFeature) MovePoint(index int, pos Position) {
	if index < 0 || index >= len(p.positions) {
		return
	}
	p.positions[index] = pos
	p.lengthValid = false
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

// Reverse flips vertex order in place.
func (p *PolylineFeature) Reverse() {
	for i, j := 0, len(p.positions)-1; i < j; i, j = i+1, j-1 {
		p.positions[i], p.positions[j] = p.positions[j], p.positions[i]
	}
	p.lengthValid = false
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

// Length returns the cumulative great-circle length in meters, cached
// until the vertex chain next mutates (spec §4.D).
func (p *PolylineFeature) Length() float64 {
	p.ensureDerived()
	return p.length
}

// CenterOfMass returns the unweighted centroid of the vertex chain,
// cached alongside Length.
func (p *PolylineFeature) CenterOfMass() Position {
	p.ensureDerived()
	return p.center
}

func (p *PolylineFeature) ensureDerived() {
	if p.lengthValid {
		return
	}
	p.length = 0
	var sumLon, sumLat, sumH float64
	for i, pos := range p.positions {
		sumLon += pos.Longitude
		sumLat += pos.Latitude
		sumH += pos.Height
		if i > 0 {
			p.length += haversineMeters(p.positions[i-1], pos)
		}
	}
	if n := len(p.positions); n > 0 {
		p.center = Position{Longitude: sumLon / float64(n), Latitude: sumLat / float64(n), Height: sumH / float64(n)}
	}
	p.lengthValid = true
}

func (p *PolylineFeature) AddTo(eng *Engine, layer *Layer) Feature {
	p.attach(eng, layer, p)
	return p
}

func (p *PolylineFeature) Remove() Feature {
	p.detach()
	return p
}

func (p *PolylineFeature) createVisual() DrawHint {
	return DrawHint{
		Kind:          KindPolyline,
		MaterialSig:   materialSignature(p.hdr.Style),
		ClampToGround: p.ClampToGround,
		Positions:     p.positions,
	}
}

func (p *PolylineFeature) updatePositionsHook() {}
func (p *PolylineFeature) updateStyleHook()     {}

func (p *PolylineFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:          p.hdr.Kind,
		ID:            p.hdr.ID,
		Name:          p.hdr.Name,
		Show:          p.hdr.Visible,
		Positions:     p.positions,
		Style:         p.hdr.Style,
		Properties:    p.hdr.Properties,
		ClampToGround: p.ClampToGround,
	}
	return encodeFeatureJSON(doc)
}

// earthRadiusMeters is the WGS84 mean radius used for the spherical
// approximations in this package (length, area, perimeter): accurate
// enough for visualization-scale features, and the same simplification
// spec §4.D calls for ("spherical on WGS84 ellipsoid").
const earthRadiusMeters = 6371008.8

func haversineMeters(a, b Position) float64 {
	lat1, lat2 := radians(a.Latitude), radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
