package geovu

// point.go implements the point graphic entity (spec §3, §4.D): a single
// geographic position plus icon/label/billboard sub-styles carried in
// Style.

// PointFeature is a single-position feature, optionally drawn as a
// billboard/icon and/or a text label.
type PointFeature struct {
	baseFeature
	position Position
}

// NewPointFeature creates a point at position. If id is empty one is
// generated (spec §4.B.6).
func NewPointFeature(id FeatureID, name string, position Position) *PointFeature {
	if id == "" {
		id = newFeatureID()
	}
	p := &PointFeature{baseFeature: newBaseFeature(KindPoint, id, name), position: position}
	p.self = p
	return p
}

// At returns the current position.
func (p *PointFeature) At() Position { return p.position }

// SetAt moves the point, firing "change" and re-propagating to the
// renderer via updatePositionsHook (spec §4.D).
func (p *PointFeature) SetAt(pos Position) {
	p.position = pos
	p.updatePositionsHook()
	p.Fire(EventChange, nil)
}

func (p *PointFeature) AddTo(eng *Engine, layer *Layer) Feature {
	if !p.attach(eng, layer, p) {
		return p
	}
	return p
}

func (p *PointFeature) Remove() Feature {
	p.detach()
	return p
}

func (p *PointFeature) createVisual() DrawHint {
	return DrawHint{
		Kind:        KindPoint,
		MaterialSig: materialSignature(p.hdr.Style),
		Positions:   []Position{p.position},
	}
}

func (p *PointFeature) updatePositionsHook() {}
func (p *PointFeature) updateStyleHook()     {}

// ToJSON round-trips id, kind, name, visibility, position, style, and
// properties (spec §8 round-trip invariant).
func (p *PointFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:       p.hdr.Kind,
		ID:         p.hdr.ID,
		Name:       p.hdr.Name,
		Show:       p.hdr.Visible,
		Position:   &p.position,
		Style:      p.hdr.Style,
		Properties: p.hdr.Properties,
	}
	return encodeFeatureJSON(doc)
}
