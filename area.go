package geovu

// area.go implements the area graphic entity (spec §3, §4.D): a polygon
// additionally carrying ground-draping controls (Granularity, the
// tessellation step used when ClampToGround-style draping is requested
// downstream, and HeightReference). Composition over PolygonFeature for
// the same reason route.go composes over polyline.go.

// AreaFeature is a polygon additionally carrying ground-draping controls.
type AreaFeature struct {
	PolygonFeature
	Granularity     float64
	HeightReference string
}

// NewAreaFeature creates an area from at least three positions.
func NewAreaFeature(id FeatureID, name string, positions []Position) *AreaFeature {
	if id == "" {
		id = newFeatureID()
	}
	a := &AreaFeature{
		PolygonFeature: PolygonFeature{
			baseFeature: newBaseFeature(KindArea, id, name),
			positions:   append([]Position(nil), positions...),
			Fill:        true,
		},
	}
	a.self = a
	return a
}

func (a *AreaFeature) AddTo(eng *Engine, layer *Layer) Feature {
	a.attach(eng, layer, a)
	return a
}

func (a *AreaFeature) Remove() Feature {
	a.detach()
	return a
}

func (a *AreaFeature) createVisual() DrawHint {
	hint := a.PolygonFeature.createVisual()
	hint.Kind = KindArea
	hint.ClampToGround = a.HeightReference == "clampToGround"
	return hint
}

func (a *AreaFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:            KindArea,
		ID:              a.hdr.ID,
		Name:            a.hdr.Name,
		Show:            a.hdr.Visible,
		Positions:       a.positions,
		Style:           a.hdr.Style,
		Properties:      a.hdr.Properties,
		Granularity:     a.Granularity,
		HeightReference: a.HeightReference,
	}
	return encodeFeatureJSON(doc)
}
