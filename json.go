package geovu

import (
	"encoding/json"
	"fmt"
	"time"
)

// json.go implements the Feature JSON format from spec §6: each
// feature-json is `{type, id, name, show, positions|position|samples,
// style, properties}`. FeatureJSON is the single wire struct every kind
// marshals into/out of; unused fields are omitted so a point's JSON stays
// small instead of carrying every other kind's empty fields.

// FeatureJSON is the canonical wire shape for one feature (spec §6).
type FeatureJSON struct {
	Type       Kind              `json:"type"`
	ID         FeatureID         `json:"id"`
	Name       string            `json:"name,omitempty"`
	Show       bool              `json:"show"`
	Interactive bool             `json:"interactive,omitempty"`

	Position  *Position  `json:"position,omitempty"`
	Positions []Position `json:"positions,omitempty"`
	Samples   []TrajectorySampleJSON `json:"samples,omitempty"`

	Style      *Style         `json:"style,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Availability *AvailabilityWindow `json:"availability,omitempty"`

	// Relation fields.
	SourceID   FeatureID `json:"sourceId,omitempty"`
	TargetID   FeatureID `json:"targetId,omitempty"`
	Curve      bool      `json:"curve,omitempty"`
	CurveApexHeight float64 `json:"curveApexHeight,omitempty"`
	Arrow      bool      `json:"arrow,omitempty"`

	// Event fields.
	Level  string   `json:"level,omitempty"`
	Radius *float64 `json:"radius,omitempty"`

	// Polygon/area fields.
	ExtrudedHeight float64 `json:"extrudedHeight,omitempty"`
	Height         float64 `json:"height,omitempty"`
	Granularity    float64 `json:"granularity,omitempty"`
	HeightReference string `json:"heightReference,omitempty"`

	// Polyline/route fields.
	ClampToGround bool   `json:"clampToGround,omitempty"`
	RouteType     string `json:"routeType,omitempty"`

	// Trajectory fields.
	InterpolationDegree int           `json:"interpolationDegree,omitempty"`
	LeadTime            time.Duration `json:"leadTime,omitempty"`
	TrailTime           time.Duration `json:"trailTime,omitempty"`
	Extrapolate         bool          `json:"extrapolate,omitempty"`

	// Model fields.
	URI              string  `json:"uri,omitempty"`
	MinimumPixelSize float64 `json:"minimumPixelSize,omitempty"`
	Heading          float64 `json:"heading,omitempty"`
	Pitch            float64 `json:"pitch,omitempty"`
	Roll             float64 `json:"roll,omitempty"`
}

// TrajectorySampleJSON is the wire shape of one trajectory sample.
type TrajectorySampleJSON struct {
	Time  time.Time      `json:"time"`
	Position Position    `json:"position"`
	Props map[string]any `json:"props,omitempty"`
}

func encodeFeatureJSON(doc FeatureJSON) ([]byte, error) {
	return json.Marshal(doc)
}

// FeatureFromJSON reconstructs a Feature from its canonical wire form
// (spec §4.C `fromJSON`). Unknown Type values are a configuration error
// (spec §7).
func FeatureFromJSON(data []byte) (Feature, error) {
	var doc FeatureJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("geovu: decode feature json: %w", err)
	}
	return featureFromDoc(doc)
}

func featureFromDoc(doc FeatureJSON) (Feature, error) {
	id := doc.ID
	if id == "" {
		id = newFeatureID()
	}
	switch doc.Type {
	case KindPoint:
		pos := Position{}
		if doc.Position != nil {
			pos = *doc.Position
		}
		f := NewPointFeature(id, doc.Name, pos)
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindPolyline:
		f := NewPolylineFeature(id, doc.Name, doc.Positions)
		f.ClampToGround = doc.ClampToGround
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindRoute:
		f := NewRouteFeature(id, doc.Name, doc.Positions, doc.RouteType)
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindPolygon:
		f := NewPolygonFeature(id, doc.Name, doc.Positions)
		f.ExtrudedHeight = doc.ExtrudedHeight
		f.Height = doc.Height
		if doc.Style != nil {
			f.Fill, f.Outline = doc.Style.Fill, doc.Style.Outline
		}
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindArea:
		f := NewAreaFeature(id, doc.Name, doc.Positions)
		f.Granularity = doc.Granularity
		f.HeightReference = doc.HeightReference
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindTrajectory:
		samples := make([]TrajectorySample, len(doc.Samples))
		for i, s := range doc.Samples {
			samples[i] = TrajectorySample{Time: s.Time, Position: s.Position, Props: s.Props}
		}
		f, err := NewTrajectoryFeature(id, doc.Name, samples)
		if err != nil {
			return nil, err
		}
		f.InterpolationDegree = doc.InterpolationDegree
		f.LeadTime = doc.LeadTime
		f.TrailTime = doc.TrailTime
		f.Extrapolate = doc.Extrapolate
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindRelation:
		f := NewRelationFeature(id, doc.Name, doc.SourceID, doc.TargetID)
		f.Curve = doc.Curve
		f.CurveApexHeight = doc.CurveApexHeight
		f.Arrow = doc.Arrow
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindEvent:
		pos := Position{}
		if doc.Position != nil {
			pos = *doc.Position
		}
		f := NewEventFeature(id, doc.Name, pos, doc.Level, doc.Radius)
		applyCommon(&f.baseFeature, doc)
		return f, nil
	case KindModel:
		f := NewModelFeature(id, doc.Name, doc.positionOrZero(), doc.URI)
		f.Scale = 1
		if doc.Style != nil && doc.Style.Scale != 0 {
			f.Scale = doc.Style.Scale
		}
		f.Heading, f.Pitch, f.Roll = doc.Heading, doc.Pitch, doc.Roll
		f.MinimumPixelSize = doc.MinimumPixelSize
		applyCommon(&f.baseFeature, doc)
		return f, nil
	default:
		return nil, newConfigError("feature", fmt.Sprintf("unknown kind %q", doc.Type), map[string]any{"kind": doc.Type})
	}
}

// positionOrZero avoids a nil deref for kinds whose Position is optional
// in the wire format but required by the constructor.
func (doc FeatureJSON) positionOrZero() Position {
	if doc.Position != nil {
		return *doc.Position
	}
	return Position{}
}

func applyCommon(b *baseFeature, doc FeatureJSON) {
	b.hdr.Visible = doc.Show
	b.hdr.Interactive = doc.Interactive
	if doc.Properties != nil {
		b.hdr.Properties = doc.Properties
	}
	if doc.Style != nil {
		b.hdr.Style = doc.Style
	}
	b.hdr.Availability = doc.Availability
}
