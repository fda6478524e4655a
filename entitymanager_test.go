package geovu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityManagerAddGetRemove(t *testing.T) {
	em := newEntityManager(nil)
	f := NewPointFeature("p1", "first", Position{Longitude: 1, Latitude: 2})

	added := em.Add(f)
	require.True(t, added)
	assert.Equal(t, 1, em.Count())

	got, ok := em.Get("p1")
	require.True(t, ok)
	assert.Equal(t, f, got)

	em.Remove("p1")
	assert.Equal(t, 0, em.Count())
	_, ok = em.Get("p1")
	assert.False(t, ok)
}

// Duplicate id insertion is a no-op that leaves the prior instance in
// place (spec §3 invariant 1, §8 boundary behaviors).
func TestEntityManagerDuplicateIDIsNoOp(t *testing.T) {
	em := newEntityManager(nil)
	first := NewPointFeature("dup", "first", Position{})
	second := NewPointFeature("dup", "second", Position{})

	require.True(t, em.Add(first))
	added := em.Add(second)

	assert.False(t, added)
	got, ok := em.Get("dup")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, em.Count())
}

func TestEntityManagerGetByType(t *testing.T) {
	em := newEntityManager(nil)
	em.Add(NewPointFeature("p1", "", Position{}))
	em.Add(NewPointFeature("p2", "", Position{}))
	em.Add(NewEventFeature("e1", "", Position{}, "warning", nil))

	points := em.GetByType(KindPoint)
	events := em.GetByType(KindEvent)

	assert.Len(t, points, 2)
	assert.Len(t, events, 1)
}

func TestEntityManagerEligibleAt(t *testing.T) {
	em := newEntityManager(nil)
	visible := NewPointFeature("visible", "", Position{})
	hidden := NewPointFeature("hidden", "", Position{})
	hidden.SetVisible(false)
	em.Add(visible)
	em.Add(hidden)

	eligible := em.EligibleAt(KindPoint, time.Now())

	require.Len(t, eligible, 1)
	assert.Equal(t, FeatureID("visible"), eligible[0].ID())
}
