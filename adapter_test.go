package geovu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptDataDetectsLonLatFields(t *testing.T) {
	raw := []byte(`[{"id":"s1","name":"sensor one","lon":10.5,"lat":20.5}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	p := features[0].(*PointFeature)
	assert.Equal(t, FeatureID("s1"), p.ID())
	assert.Equal(t, 10.5, p.At().Longitude)
	assert.Equal(t, 20.5, p.At().Latitude)
}

func TestAdaptDataDetectsNestedPositionObject(t *testing.T) {
	raw := []byte(`[{"id":"s2","position":{"longitude":1,"latitude":2,"height":3}}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	p := features[0].(*PointFeature)
	assert.Equal(t, Position{Longitude: 1, Latitude: 2, Height: 3}, p.At())
}

func TestAdaptDataDetectsGeoJSONCoordinatesArray(t *testing.T) {
	raw := []byte(`[{"id":"s3","geometry":{"coordinates":[5,6,7]}}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	p := features[0].(*PointFeature)
	assert.Equal(t, Position{Longitude: 5, Latitude: 6, Height: 7}, p.At())
}

func TestAdaptDataSkipsRecordsWithoutPositionAndReportsDiagnostic(t *testing.T) {
	raw := []byte(`[{"id":"ok","lon":1,"lat":1},{"id":"bad","name":"no position here"}]`)

	features, err := AdaptData(raw, nil, nil)

	require.Error(t, err)
	assert.Len(t, features, 1)
}

func TestAdaptDataGroupsRecordsIntoTrajectoryByGroupField(t *testing.T) {
	raw := []byte(`[
		{"trackId":"v1","lon":0,"lat":0,"time":"2024-01-01T00:00:00Z"},
		{"trackId":"v1","lon":1,"lat":0,"time":"2024-01-01T00:00:10Z"}
	]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	traj := features[0].(*TrajectoryFeature)
	assert.Equal(t, FeatureID("v1"), traj.ID())
	assert.Len(t, traj.Samples(), 2)
}

func TestAdaptDataHintOverridesPositionPath(t *testing.T) {
	raw := []byte(`[{"id":"s1","loc":{"lon":9,"lat":9}}]`)
	hint := &AdaptHint{PositionPath: "loc"}

	features, err := AdaptData(raw, hint, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	p := features[0].(*PointFeature)
	assert.Equal(t, 9.0, p.At().Longitude)
}

func TestAdaptDataHintForcesEventKind(t *testing.T) {
	raw := []byte(`[{"id":"e1","lon":1,"lat":1,"level":"critical","radius":200}]`)
	hint := &AdaptHint{Kind: KindEvent}

	features, err := AdaptData(raw, hint, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	e := features[0].(*EventFeature)
	assert.Equal(t, "critical", e.Level)
	require.NotNil(t, e.Radius)
	assert.Equal(t, 200.0, *e.Radius)
}

func TestAdaptDataAppliesDefaultStyleWhenFeatureHasNone(t *testing.T) {
	raw := []byte(`[{"id":"s1","lon":1,"lat":1}]`)
	style := &Style{Color: [4]float64{1, 0, 0, 1}}

	features, err := AdaptData(raw, nil, &AdaptOptions{DefaultStyle: style})

	require.NoError(t, err)
	require.Len(t, features, 1)
	require.NotNil(t, features[0].Style())
	assert.Equal(t, style.Color, features[0].Style().Color)
}

func TestAdaptDataInfersRelationFromSourceAndTarget(t *testing.T) {
	raw := []byte(`[{"id":"r1","source":"a","target":"b"}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	r := features[0].(*RelationFeature)
	assert.Equal(t, FeatureID("a"), r.SourceID)
	assert.Equal(t, FeatureID("b"), r.TargetID)
}

func TestAdaptDataInfersEventFromEventTypeField(t *testing.T) {
	raw := []byte(`[{"id":"e1","lon":1,"lat":1,"eventType":"alarm"}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	e := features[0].(*EventFeature)
	assert.Equal(t, "alarm", e.Level)
}

func TestAdaptDataInfersAreaFromThreeOrMoreRingPositions(t *testing.T) {
	raw := []byte(`[{"id":"a1","positions":[{"lon":0,"lat":0},{"lon":1,"lat":0},{"lon":1,"lat":1}]}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	a := features[0].(*AreaFeature)
	assert.Len(t, a.Positions(), 3)
}

func TestAdaptDataInfersRouteFromTwoPositions(t *testing.T) {
	raw := []byte(`[{"id":"rt1","positions":[{"lon":0,"lat":0},{"lon":1,"lat":0}]}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	rt := features[0].(*RouteFeature)
	assert.Len(t, rt.Positions(), 2)
}

func TestAdaptDataInfersTrajectoryFromNestedSamplesArray(t *testing.T) {
	raw := []byte(`[{"id":"tr1","samples":[
		{"lon":0,"lat":0,"time":"2024-01-01T00:00:00Z"},
		{"lon":1,"lat":0,"time":"2024-01-01T00:00:10Z"}
	]}]`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
	traj := features[0].(*TrajectoryFeature)
	assert.Equal(t, FeatureID("tr1"), traj.ID())
	assert.Len(t, traj.Samples(), 2)
}

func TestAdaptDataAcceptsSingleObjectNotJustArray(t *testing.T) {
	raw := []byte(`{"id":"solo","lon":2,"lat":3}`)

	features, err := AdaptData(raw, nil, nil)

	require.NoError(t, err)
	require.Len(t, features, 1)
}
