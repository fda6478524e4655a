package geovu

// modelfeature.go implements the model graphic entity (spec §3, §4.D): a
// positioned reference to an external 3D asset (glTF/glb URI) with
// orientation and scale, handed to the host renderer rather than loaded
// by this package — loading, caching, and GPU upload stay the external
// collaborator's responsibility (spec §1).

// ModelFeature places an externally-loaded 3D asset at a position.
type ModelFeature struct {
	baseFeature
	Position         Position
	URI              string
	Scale            float64
	Heading          float64
	Pitch            float64
	Roll             float64
	MinimumPixelSize float64
}

// NewModelFeature creates a model reference at position pointing at uri.
func NewModelFeature(id FeatureID, name string, position Position, uri string) *ModelFeature {
	if id == "" {
		id = newFeatureID()
	}
	m := &ModelFeature{
		baseFeature: newBaseFeature(KindModel, id, name),
		Position:    position,
		URI:         uri,
		Scale:       1,
	}
	m.self = m
	return m
}

// SetAt relocates the model.
func (m *ModelFeature) SetAt(pos Position) {
	m.Position = pos
	m.updatePositionsHook()
	m.Fire(EventChange, nil)
}

func (m *ModelFeature) AddTo(eng *Engine, layer *Layer) Feature {
	m.attach(eng, layer, m)
	return m
}

func (m *ModelFeature) Remove() Feature {
	m.detach()
	return m
}

func (m *ModelFeature) createVisual() DrawHint {
	return DrawHint{
		Kind:        KindModel,
		MaterialSig: materialSignature(m.hdr.Style),
		Positions:   []Position{m.Position},
	}
}

func (m *ModelFeature) updatePositionsHook() {}
func (m *ModelFeature) updateStyleHook()     {}

func (m *ModelFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:             KindModel,
		ID:               m.hdr.ID,
		Name:             m.hdr.Name,
		Show:             m.hdr.Visible,
		Position:         &m.Position,
		Style:            m.hdr.Style,
		Properties:       m.hdr.Properties,
		URI:              m.URI,
		MinimumPixelSize: m.MinimumPixelSize,
		Heading:          m.Heading,
		Pitch:            m.Pitch,
		Roll:             m.Roll,
	}
	return encodeFeatureJSON(doc)
}
