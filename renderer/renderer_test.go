package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int, kind, sig string, positionCount int, animated bool) []DrawItem {
	out := make([]DrawItem, n)
	for i := range out {
		out[i] = DrawItem{Key: i, Kind: kind, MaterialSig: sig, PositionCount: positionCount, Animated: animated}
	}
	return out
}

func TestSelectBelowBatchMinIsSingle(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}

	batches := f.Select(items(3, "point", "m1", 1, false))

	require.Len(t, batches, 1)
	assert.Equal(t, Single, batches[0].Strategy)
}

func TestSelectBetweenBatchAndInstanceMinIsBatched(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}

	batches := f.Select(items(10, "point", "m1", 1, false))

	require.Len(t, batches, 1)
	assert.Equal(t, Batched, batches[0].Strategy)
}

func TestSelectAboveInstanceMinWithUniformGeometryIsInstanced(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}

	batches := f.Select(items(100, "point", "m1", 1, false))

	require.Len(t, batches, 1)
	assert.Equal(t, Instanced, batches[0].Strategy)
}

func TestSelectAnimatedNeverInstancesEvenAboveThreshold(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}

	batches := f.Select(items(100, "point", "m1", 1, true))

	require.Len(t, batches, 1)
	assert.Equal(t, Batched, batches[0].Strategy)
}

func TestSelectRestrictsInstancingToBillboardAndModelKinds(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}

	batches := f.Select(items(100, "polyline", "m1", 1, false))

	require.Len(t, batches, 1)
	assert.Equal(t, Batched, batches[0].Strategy)
}

func TestSelectAboveInstanceMinModelKindIsInstanced(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}

	batches := f.Select(items(100, "model", "m1", 1, false))

	require.Len(t, batches, 1)
	assert.Equal(t, Instanced, batches[0].Strategy)
}

func TestSelectNonUniformGeometryFallsBackToBatched(t *testing.T) {
	f := &Factory{Thresholds: Thresholds{BatchMin: 4, InstanceMin: 64}}
	mixed := append(items(60, "polyline", "m1", 2, false), items(60, "polyline", "m1", 5, false)...)

	batches := f.Select(mixed)

	require.Len(t, batches, 1)
	assert.Equal(t, Batched, batches[0].Strategy)
}

func TestSelectGroupsBySignatureIndependently(t *testing.T) {
	f := NewFactory()
	all := append(items(2, "point", "m1", 1, false), items(2, "point", "m2", 1, false)...)

	batches := f.Select(all)

	assert.Len(t, batches, 2)
}

func TestSignatureSeparatesClampToGroundAndAnimated(t *testing.T) {
	a := signature("point", "m1", false, false)
	b := signature("point", "m1", true, false)
	c := signature("point", "m1", false, true)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}
