package geovu

// eventfeature.go implements the event graphic entity (spec §3, §4.D): a
// point-like marker tagged with a severity Level and an optional ground
// Radius used to draw an expanding circle (e.g. an alert or incident
// marker), gated by the same Availability window every feature supports.

// EventFeature marks a point-in-time/point-in-space occurrence.
type EventFeature struct {
	baseFeature
	Position Position
	Level    string
	Radius   *float64
}

// NewEventFeature creates an event marker at position. radius is optional
// (nil means no ground circle is drawn).
func NewEventFeature(id FeatureID, name string, position Position, level string, radius *float64) *EventFeature {
	if id == "" {
		id = newFeatureID()
	}
	e := &EventFeature{
		baseFeature: newBaseFeature(KindEvent, id, name),
		Position:    position,
		Level:       level,
		Radius:      radius,
	}
	e.self = e
	return e
}

// SetAt relocates the event marker.
func (e *EventFeature) SetAt(pos Position) {
	e.Position = pos
	e.updatePositionsHook()
	e.Fire(EventChange, nil)
}

func (e *EventFeature) AddTo(eng *Engine, layer *Layer) Feature {
	e.attach(eng, layer, e)
	return e
}

func (e *EventFeature) Remove() Feature {
	e.detach()
	return e
}

func (e *EventFeature) createVisual() DrawHint {
	return DrawHint{
		Kind:        KindEvent,
		MaterialSig: materialSignature(e.hdr.Style),
		Positions:   []Position{e.Position},
	}
}

func (e *EventFeature) updatePositionsHook() {}
func (e *EventFeature) updateStyleHook()     {}

func (e *EventFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:       KindEvent,
		ID:         e.hdr.ID,
		Name:       e.hdr.Name,
		Show:       e.hdr.Visible,
		Position:   &e.Position,
		Style:      e.hdr.Style,
		Properties: e.hdr.Properties,
		Level:      e.Level,
		Radius:     e.Radius,
	}
	return encodeFeatureJSON(doc)
}
