package geovu

import (
	"time"

	"github.com/geovu/geovu/timeline"
)

// entitymanager.go implements the Entity Manager, component G: a flat
// lookup table of live Features plus a by-kind secondary index, the same
// "one component manager struct per concern" idiom the teacher's
// application type uses for its povs/models/bodies managers (app.go) —
// generalized here from per-component-type managers to a single manager
// over the tagged-variant Feature model (spec §9).

// EntityManager owns every Feature currently attached to an Engine,
// independent of which Layer it belongs to, so relations can resolve
// endpoints and LOD/availability queries can run without walking layers.
type EntityManager struct {
	log *Logger

	byID   map[FeatureID]Feature
	byKind map[Kind]map[FeatureID]Feature

	// available holds, per kind, a timeline.Availability index built from
	// every member of that kind with a bounded AvailabilityWindow (spec
	// §4.F). It is rebuilt lazily on the next EligibleAt call after a
	// mutation rather than on every Add/Remove/SetAvailability, so a burst
	// of feature churn pays one rebuild instead of one per mutation.
	available map[Kind]*timeline.Availability
	dirty     map[Kind]bool
}

func newEntityManager(log *Logger) *EntityManager {
	return &EntityManager{
		log:       log,
		byID:      map[FeatureID]Feature{},
		byKind:    map[Kind]map[FeatureID]Feature{},
		available: map[Kind]*timeline.Availability{},
		dirty:     map[Kind]bool{},
	}
}

// Add registers f under its id. A duplicate id is a no-op: it warns and
// leaves the prior instance in place (spec §3 invariant 1, §8 boundary
// behaviors).
func (m *EntityManager) Add(f Feature) bool {
	id := f.ID()
	if _, exists := m.byID[id]; exists {
		m.log.warn("entities", "add", map[string]any{"id": id}, "duplicate feature id, keeping prior instance")
		return false
	}
	m.byID[id] = f
	kind := f.Kind()
	bucket, ok := m.byKind[kind]
	if !ok {
		bucket = map[FeatureID]Feature{}
		m.byKind[kind] = bucket
	}
	bucket[id] = f
	m.dirty[kind] = true
	return true
}

// Remove drops id from every index. A missing id is a no-op.
func (m *EntityManager) Remove(id FeatureID) {
	f, ok := m.byID[id]
	delete(m.byID, id)
	m.removeFromKindIndex(id)
	if ok {
		m.dirty[f.Kind()] = true
	}
}

func (m *EntityManager) removeFromKindIndex(id FeatureID) {
	for _, bucket := range m.byKind {
		delete(bucket, id)
	}
}

// Get looks up a feature by id.
func (m *EntityManager) Get(id FeatureID) (Feature, bool) {
	f, ok := m.byID[id]
	return f, ok
}

// GetAll returns every registered feature, in no particular order.
func (m *EntityManager) GetAll() []Feature {
	out := make([]Feature, 0, len(m.byID))
	for _, f := range m.byID {
		out = append(out, f)
	}
	return out
}

// GetByType returns every feature of the given kind.
func (m *EntityManager) GetByType(kind Kind) []Feature {
	bucket := m.byKind[kind]
	out := make([]Feature, 0, len(bucket))
	for _, f := range bucket {
		out = append(out, f)
	}
	return out
}

// Count reports the total number of registered features.
func (m *EntityManager) Count() int { return len(m.byID) }

// reindexAvailability is the hook Feature.SetAvailability calls whenever
// a feature's availability window is reassigned; it just marks kind
// dirty so the next EligibleAt query rebuilds the interval index rather
// than rebuilding eagerly on every single mutation.
func (m *EntityManager) reindexAvailability(id FeatureID, kind Kind, w *AvailabilityWindow) {
	m.dirty[kind] = true
}

// rebuildAvailability rebuilds the sorted interval index for kind from
// every current member with a bounded AvailabilityWindow (spec §4.F).
// Members with no window are not indexed — they are always eligible
// regardless of t and are folded in directly by EligibleAt.
func (m *EntityManager) rebuildAvailability(kind Kind) {
	bucket := m.byKind[kind]
	intervals := make([]timeline.Interval, 0, len(bucket))
	for id, f := range bucket {
		w := f.Availability()
		if w == nil {
			continue
		}
		intervals = append(intervals, timeline.Interval{Start: w.Start, End: w.End, Key: id})
	}
	m.available[kind] = timeline.NewAvailability(intervals)
	m.dirty[kind] = false
}

// EligibleAt returns every feature of kind that is visible and currently
// within its availability window. (Layer.performCulling does not call it;
// it checks each member's Eligible directly.) Bounded-window members are
// resolved through the per-kind timeline.Availability interval index in
// O(log N + m), m being the intervals that have started by t; unbounded members (no window: "always
// available") are folded in directly since they are never excluded by t.
func (m *EntityManager) EligibleAt(kind Kind, t time.Time) []Feature {
	bucket := m.byKind[kind]
	if len(bucket) == 0 {
		return nil
	}
	if m.dirty[kind] || m.available[kind] == nil {
		m.rebuildAvailability(kind)
	}
	idx := m.available[kind]
	out := make([]Feature, 0, idx.Len())
	bounded := make(map[FeatureID]struct{}, idx.Len())
	for _, key := range idx.At(t) {
		id := key.(FeatureID)
		bounded[id] = struct{}{}
		if f, ok := bucket[id]; ok && f.Visible() {
			out = append(out, f)
		}
	}
	for id, f := range bucket {
		if _, seen := bounded[id]; seen {
			continue
		}
		if f.Availability() == nil && f.Visible() {
			out = append(out, f)
		}
	}
	return out
}
