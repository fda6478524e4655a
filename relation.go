package geovu

import "math"

// relation.go implements the relation graphic entity (spec §3, §4.D): a
// link between two other features resolved by id through the
// EntityManager each frame rather than by direct pointer, so either
// endpoint can be added, removed, or replaced independently without the
// relation holding a stale reference (spec §3 invariant 6: "a relation
// whose endpoint no longer exists hides itself").

const defaultCurveSegments = 50

// RelationFeature draws a link between a source and target feature,
// optionally curved into an arc.
type RelationFeature struct {
	baseFeature
	SourceID        FeatureID
	TargetID        FeatureID
	Curve           bool
	CurveApexHeight float64
	Arrow           bool
	Label           string
}

// NewRelationFeature creates a relation between two feature ids.
func NewRelationFeature(id FeatureID, name string, sourceID, targetID FeatureID) *RelationFeature {
	if id == "" {
		id = newFeatureID()
	}
	r := &RelationFeature{
		baseFeature: newBaseFeature(KindRelation, id, name),
		SourceID:    sourceID,
		TargetID:    targetID,
	}
	r.self = r
	return r
}

// endpoints resolves both endpoint positions via the owning EntityManager.
// ok is false if either endpoint is missing or has no resolvable position,
// in which case the relation should be treated as ineligible to draw.
func (r *RelationFeature) endpoints() (src, dst Position, ok bool) {
	if r.eng == nil {
		return Position{}, Position{}, false
	}
	sf, found := r.eng.entities.Get(r.SourceID)
	if !found {
		return Position{}, Position{}, false
	}
	tf, found := r.eng.entities.Get(r.TargetID)
	if !found {
		return Position{}, Position{}, false
	}
	sp, ok1 := positionOf(sf)
	tp, ok2 := positionOf(tf)
	if !ok1 || !ok2 {
		return Position{}, Position{}, false
	}
	return sp, tp, true
}

// positionOf extracts a representative position from any Feature kind
// that has one, used by relations to locate their endpoints.
func positionOf(f Feature) (Position, bool) {
	switch v := f.(type) {
	case *PointFeature:
		return v.At(), true
	case *EventFeature:
		return v.Position, true
	case *ModelFeature:
		return v.Position, true
	case *PolylineFeature:
		if len(v.positions) == 0 {
			return Position{}, false
		}
		return v.CenterOfMass(), true
	case *RouteFeature:
		if len(v.positions) == 0 {
			return Position{}, false
		}
		return v.CenterOfMass(), true
	case *PolygonFeature:
		if len(v.positions) == 0 {
			return Position{}, false
		}
		return centroidOf(v.positions), true
	case *AreaFeature:
		if len(v.positions) == 0 {
			return Position{}, false
		}
		return centroidOf(v.positions), true
	default:
		return Position{}, false
	}
}

func centroidOf(positions []Position) Position {
	var lon, lat, h float64
	for _, p := range positions {
		lon += p.Longitude
		lat += p.Latitude
		h += p.Height
	}
	n := float64(len(positions))
	return Position{Longitude: lon / n, Latitude: lat / n, Height: h / n}
}

// curvePositions samples the arc between src and dst into n segments,
// lifting the midpoint by CurveApexHeight using a sine profile (spec
// §4.D "curved path samples over N segments, default 50").
func curvePositions(src, dst Position, apexHeight float64, segments int) []Position {
	if segments <= 0 {
		segments = defaultCurveSegments
	}
	out := make([]Position, segments+1)
	for i := 0; i <= segments; i++ {
		f := float64(i) / float64(segments)
		p := lerpPosition(src, dst, f)
		p.Height += apexHeight * math.Sin(math.Pi*f)
		out[i] = p
	}
	return out
}

func (r *RelationFeature) AddTo(eng *Engine, layer *Layer) Feature {
	r.attach(eng, layer, r)
	return r
}

func (r *RelationFeature) Remove() Feature {
	r.detach()
	return r
}

func (r *RelationFeature) createVisual() DrawHint {
	src, dst, ok := r.endpoints()
	if !ok {
		return DrawHint{Kind: KindRelation, MaterialSig: materialSignature(r.hdr.Style)}
	}
	var positions []Position
	if r.Curve {
		positions = curvePositions(src, dst, r.CurveApexHeight, defaultCurveSegments)
	} else {
		positions = []Position{src, dst}
	}
	return DrawHint{
		Kind:        KindRelation,
		MaterialSig: materialSignature(r.hdr.Style),
		Positions:   positions,
	}
}

func (r *RelationFeature) updatePositionsHook() {}
func (r *RelationFeature) updateStyleHook()     {}

func (r *RelationFeature) ToJSON() ([]byte, error) {
	doc := FeatureJSON{
		Type:            KindRelation,
		ID:              r.hdr.ID,
		Name:            r.hdr.Name,
		Show:            r.hdr.Visible,
		Style:           r.hdr.Style,
		Properties:      r.hdr.Properties,
		SourceID:        r.SourceID,
		TargetID:        r.TargetID,
		Curve:           r.Curve,
		CurveApexHeight: r.CurveApexHeight,
		Arrow:           r.Arrow,
	}
	return encodeFeatureJSON(doc)
}
