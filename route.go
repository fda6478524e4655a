package geovu

// route.go implements the route graphic entity (spec §3, §4.D): a
// polyline additionally tagged with a RouteType (e.g. "road", "flight",
// "shipping") that is stored and round-tripped through JSON but not read
// by styling or material selection, and otherwise sharing
// every polyline behavior — point editing, derived length/center, JSON
// shape. Composition over a fresh copy of PolylineFeature keeps the
// tagged-variant model flat (spec §9) instead of introducing a second
// inheritance level.

// RouteFeature is a polyline additionally carrying a route classification.
type RouteFeature struct {
	PolylineFeature
	RouteType string
}

// NewRouteFeature creates a route from at least two positions.
func NewRouteFeature(id FeatureID, name string, positions []Position, routeType string) *RouteFeature {
	if id == "" {
		id = newFeatureID()
	}
	r := &RouteFeature{
		PolylineFeature: PolylineFeature{
			baseFeature: newBaseFeature(KindRoute, id, name),
			positions:   append([]Position(nil), positions...),
			MinPointNum: defaultMinPolylinePoints,
			MaxPointNum: defaultMaxPolylinePoints,
		},
		RouteType: routeType,
	}
	r.self = r
	return r
}

func (r *RouteFeature) AddTo(eng *Engine, layer *Layer) Feature {
	r.attach(eng, layer, r)
	return r
}

func (r *RouteFeature) Remove() Feature {
	r.detach()
	return r
}

func (r *RouteFeature) createVisual() DrawHint {
	hint := r.PolylineFeature.createVisual()
	hint.Kind = KindRoute
	return hint
}

func (r *RouteFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:          KindRoute,
		ID:            r.hdr.ID,
		Name:          r.hdr.Name,
		Show:          r.hdr.Visible,
		Positions:     r.positions,
		Style:         r.hdr.Style,
		Properties:    r.hdr.Properties,
		ClampToGround: r.ClampToGround,
		RouteType:     r.RouteType,
	}
	return encodeFeatureJSON(doc)
}
