package geovu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// JSON round trips preserve id, kind, name, visibility, positions, style,
// and properties for every feature kind (spec §8 round-trip invariant).

func TestPointFeatureJSONRoundTrip(t *testing.T) {
	p := NewPointFeature("p1", "depot", Position{Longitude: 10, Latitude: 20, Height: 5})
	p.SetVisible(false)
	p.SetProperties(map[string]any{"category": "warehouse"})

	data, err := p.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	rp := restored.(*PointFeature)

	assert.Equal(t, p.ID(), rp.ID())
	assert.Equal(t, KindPoint, rp.Kind())
	assert.Equal(t, "depot", rp.hdr.Name)
	assert.False(t, rp.Visible())
	assert.Equal(t, p.At(), rp.At())
	assert.Equal(t, "warehouse", rp.Properties()["category"])
}

func TestPolylineFeatureJSONRoundTrip(t *testing.T) {
	positions := []Position{{Longitude: 0, Latitude: 0}, {Longitude: 1, Latitude: 1}}
	p := NewPolylineFeature("pl1", "route segment", positions)
	p.ClampToGround = true

	data, err := p.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	rp := restored.(*PolylineFeature)

	assert.Equal(t, positions, rp.positions)
	assert.True(t, rp.ClampToGround)
}

func TestPolygonFeatureJSONRoundTrip(t *testing.T) {
	positions := []Position{{Longitude: 0, Latitude: 0}, {Longitude: 1, Latitude: 0}, {Longitude: 1, Latitude: 1}}
	p := NewPolygonFeature("pg1", "zone", positions)
	p.ExtrudedHeight = 50
	p.Height = 10

	data, err := p.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	rp := restored.(*PolygonFeature)

	assert.Equal(t, positions, rp.positions)
	assert.Equal(t, 50.0, rp.ExtrudedHeight)
	assert.Equal(t, 10.0, rp.Height)
}

func TestEventFeatureJSONRoundTrip(t *testing.T) {
	radius := 500.0
	e := NewEventFeature("e1", "incident", Position{Longitude: 5, Latitude: 5}, "critical", &radius)

	data, err := e.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	re := restored.(*EventFeature)

	assert.Equal(t, "critical", re.Level)
	require.NotNil(t, re.Radius)
	assert.Equal(t, 500.0, *re.Radius)
	assert.Equal(t, e.Position, re.Position)
}

func TestModelFeatureJSONRoundTrip(t *testing.T) {
	m := NewModelFeature("m1", "truck", Position{Longitude: 1, Latitude: 2}, "https://example.test/truck.glb")
	m.Heading = 45
	m.Pitch = 0
	m.Roll = 0
	m.MinimumPixelSize = 32

	data, err := m.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	rm := restored.(*ModelFeature)

	assert.Equal(t, m.URI, rm.URI)
	assert.Equal(t, 45.0, rm.Heading)
	assert.Equal(t, 32.0, rm.MinimumPixelSize)
	assert.Equal(t, m.Position, rm.Position)
}

func TestRelationFeatureJSONRoundTrip(t *testing.T) {
	r := NewRelationFeature("r1", "link", "a", "b")
	r.Curve = true
	r.CurveApexHeight = 100
	r.Arrow = true

	data, err := r.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	rr := restored.(*RelationFeature)

	assert.Equal(t, FeatureID("a"), rr.SourceID)
	assert.Equal(t, FeatureID("b"), rr.TargetID)
	assert.True(t, rr.Curve)
	assert.Equal(t, 100.0, rr.CurveApexHeight)
	assert.True(t, rr.Arrow)
}

func TestAreaFeatureJSONRoundTrip(t *testing.T) {
	positions := []Position{{Longitude: 0, Latitude: 0}, {Longitude: 1, Latitude: 0}, {Longitude: 1, Latitude: 1}}
	a := NewAreaFeature("ar1", "region", positions)
	a.Granularity = 0.1
	a.HeightReference = "clampToGround"

	data, err := a.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	ra := restored.(*AreaFeature)

	assert.Equal(t, 0.1, ra.Granularity)
	assert.Equal(t, "clampToGround", ra.HeightReference)
}

func TestRouteFeatureJSONRoundTrip(t *testing.T) {
	positions := []Position{{Longitude: 0, Latitude: 0}, {Longitude: 1, Latitude: 1}}
	r := NewRouteFeature("rt1", "highway", positions, "road")

	data, err := r.ToJSON()
	require.NoError(t, err)

	restored, err := FeatureFromJSON(data)
	require.NoError(t, err)
	rr := restored.(*RouteFeature)

	assert.Equal(t, positions, rr.positions)
}

func TestFeatureFromJSONUnknownKindIsConfigError(t *testing.T) {
	_, err := FeatureFromJSON([]byte(`{"type":"no-such-kind","id":"x"}`))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestFeatureFromJSONMalformedDataErrors(t *testing.T) {
	_, err := FeatureFromJSON([]byte(`not json`))

	require.Error(t, err)
}
