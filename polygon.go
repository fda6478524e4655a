package geovu

import "math"

// polygon.go implements the polygon graphic entity (spec §3, §4.D): a
// closed ring of at least three vertices, with fill/outline/extrusion
// style knobs and derived Area/Perimeter computed spherically on WGS84
// (same simplification as polyline.Length, spec §4.D).

const defaultMinPolygonPoints = 3

// PolygonFeature is a closed planar (or extruded) region.
type PolygonFeature struct {
	baseFeature
	positions      []Position
	Fill           bool
	Outline        bool
	ExtrudedHeight float64
	Height         float64

	derivedValid bool
	area         float64
	perimeter    float64
}

// NewPolygonFeature creates a polygon from at least three positions.
func NewPolygonFeature(id FeatureID, name string, positions []Position) *PolygonFeature {
	if id == "" {
		id = newFeatureID()
	}
	p := &PolygonFeature{
		baseFeature: newBaseFeature(KindPolygon, id, name),
		positions:   append([]Position(nil), positions...),
		Fill:        true,
	}
	p.self = p
	return p
}

// Positions returns a copy of the ring vertices.
func (p *PolygonFeature) Positions() []Position { return append([]Position(nil), p.positions...) }

// SetPositions replaces the ring, invalidating cached derived values.
func (p *PolygonFeature) SetPositions(positions []Position) {
	if len(positions) < defaultMinPolygonPoints {
		p.log.warn("polygon", "setPositions", map[string]any{"id": p.hdr.ID, "count": len(positions)},
			"fewer than 3 vertices, positions not updated")
		return
	}
	p.positions = append([]Position(nil), positions...)
	p.derivedValid = false
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

// Area returns the ring's spherical area on WGS84, in square meters, via
// the spherical excess formula (sum of Δlongitude·(2+sin φ1+sin φ2) over
// the edges, times R²/2, adequate for visualization-scale polygons).
func (p *PolygonFeature) Area() float64 {
	p.ensureDerived()
	return p.area
}

// Perimeter returns the cumulative great-circle ring length in meters.
func (p *PolygonFeature) Perimeter() float64 {
	p.ensureDerived()
	return p.perimeter
}

func (p *PolygonFeature) ensureDerived() {
	if p.derivedValid {
		return
	}
	n := len(p.positions)
	p.area, p.perimeter = 0, 0
	if n < 3 {
		p.derivedValid = true
		return
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := p.positions[i]
		b := p.positions[(i+1)%n]
		sum += radians(b.Longitude-a.Longitude) * (2 + math.Sin(radians(a.Latitude)) + math.Sin(radians(b.Latitude)))
		p.perimeter += haversineMeters(a, b)
	}
	p.area = math.Abs(sum * earthRadiusMeters * earthRadiusMeters / 2)
	p.derivedValid = true
}

func (p *PolygonFeature) AddTo(eng *Engine, layer *Layer) Feature {
	p.attach(eng, layer, p)
	return p
}

func (p *PolygonFeature) Remove() Feature {
	p.detach()
	return p
}

func (p *PolygonFeature) createVisual() DrawHint {
	return DrawHint{
		Kind:        KindPolygon,
		MaterialSig: materialSignature(p.hdr.Style),
		Positions:   p.positions,
	}
}

func (p *PolygonFeature) updatePositionsHook() {}
func (p *PolygonFeature) updateStyleHook()     {}

func (p *PolygonFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:           KindPolygon,
		ID:             p.hdr.ID,
		Name:           p.hdr.Name,
		Show:           p.hdr.Visible,
		Positions:      p.positions,
		Style:          p.hdr.Style,
		Properties:     p.hdr.Properties,
		ExtrudedHeight: p.ExtrudedHeight,
		Height:         p.Height,
	}
	return encodeFeatureJSON(doc)
}
