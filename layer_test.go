package geovu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spec §8 scenario 1: adding and removing a point feature through a
// layer is reflected in the shared EntityManager.
func TestLayerAddRemoveDataScenario(t *testing.T) {
	eng := NewEngine()
	layer := eng.AddLayer("l1", "markers")
	p := NewPointFeature("p1", "one", Position{Longitude: 1, Latitude: 2})

	layer.AddData(p)

	assert.Equal(t, 1, eng.Entities().Count())
	assert.Equal(t, 1, layer.Count())

	layer.RemoveData(p)

	assert.Equal(t, 0, eng.Entities().Count())
	assert.Equal(t, 0, layer.Count())
}

// spec §8 scenario 4: hiding a layer drops the visible count to zero
// without mutating each feature's own Visible flag.
func TestLayerVisibilityCascadeScenario(t *testing.T) {
	eng := NewEngine()
	layer := eng.AddLayer("l1", "points")
	features := make([]*PointFeature, 0, 100)
	for i := 0; i < 100; i++ {
		p := NewPointFeature("", "", Position{Longitude: 1, Latitude: 2})
		features = append(features, p)
		layer.AddData(p)
	}
	eng.MaybeCull()
	require.Equal(t, 100, eng.StatsSnapshot().VisibleFeatures)

	layer.SetVisible(false)
	eng.MaybeCull()

	stats := eng.StatsSnapshot()
	assert.Equal(t, 0, stats.VisibleFeatures)
	for _, f := range features {
		assert.True(t, f.Visible())
	}
}

func TestLayerGetDataAndGetAllData(t *testing.T) {
	eng := NewEngine()
	layer := eng.AddLayer("l1", "points")
	p1 := NewPointFeature("p1", "", Position{})
	p2 := NewPointFeature("p2", "", Position{})
	layer.AddData(p1, p2)

	got, ok := layer.GetData("p1")
	require.True(t, ok)
	assert.Equal(t, FeatureID("p1"), got.ID())

	all := layer.GetAllData()
	assert.Len(t, all, 2)

	_, ok = layer.GetData("missing")
	assert.False(t, ok)
}

func TestLayerOpacityClamped(t *testing.T) {
	layer := NewLayer("l1", "points")

	layer.SetOpacity(-1)
	assert.Equal(t, 0.0, layer.Opacity())

	layer.SetOpacity(2)
	assert.Equal(t, 1.0, layer.Opacity())

	layer.SetOpacity(0.5)
	assert.Equal(t, 0.5, layer.Opacity())
}

func TestLayerTimeRangeGatesCullingEligibility(t *testing.T) {
	eng := NewEngine()
	layer := eng.AddLayer("l1", "points")
	p := NewPointFeature("p1", "", Position{})
	layer.AddData(p)

	now := eng.Clock().CurrentTime()
	layer.SetTimeRange(&AvailabilityWindow{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
	eng.MaybeCull()

	assert.Equal(t, 0, eng.StatsSnapshot().VisibleFeatures)
}
