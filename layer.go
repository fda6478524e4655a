package geovu

import (
	"time"

	"github.com/geovu/geovu/renderer"
)

// layer.go implements the Layer, component I: a named, independently
// toggleable container of features with its own visibility/opacity/
// zOrder/timeRange, mirroring its membership into the external Viewer's
// entity collection through the Renderer Factory (spec §4.I). This
// replaces the teacher's off-screen-framebuffer Layer — an OpenGL
// render-target concept with no counterpart once an external renderer
// owns the GPU pipeline (spec §1) — while keeping the same "named
// grouping the engine iterates every frame" role the teacher's scene
// list plays in eng.go's Action loop.
type Layer struct {
	Lifecycle
	id        LayerID
	name      string
	opacity   float64
	zOrder    int
	timeRange *AvailabilityWindow

	eng     *Engine
	members map[FeatureID]struct{}

	pending map[FeatureID]struct{} // ids touched since the last processUpdate.

	// interactionHandler is invoked when another layer reports
	// dataChanged/visibilityChanged via the Engine's layer-interaction
	// broadcast (spec §4.J); nil means the default no-op.
	interactionHandler func(sourceLayerID LayerID, event EventType, data any)

	lastCulled   int
	lastVisible  int
	lastBatches  []renderer.Batch
}

// NewLayer creates an empty, visible layer under id.
func NewLayer(id LayerID, name string) *Layer {
	l := &Layer{
		Lifecycle: NewLifecycle("layer", nil),
		id:        id,
		name:      name,
		opacity:   1,
		members:   map[FeatureID]struct{}{},
		pending:   map[FeatureID]struct{}{},
	}
	l.Enable()
	return l
}

// ID returns the caller-supplied layer identifier.
func (l *Layer) ID() LayerID { return l.id }

// Name returns the display name.
func (l *Layer) Name() string { return l.name }

// SetVisible shows or hides the whole layer, cascading to its members'
// visual state without mutating each Feature's own Visible flag (spec
// §3 invariant 5: layer visibility gates drawing independently of the
// feature's own show/hide state). Fires visibilityChanged.
func (l *Layer) SetVisible(v bool) {
	if l.Enabled() == v {
		return
	}
	if v {
		l.Enable()
	} else {
		l.Disable()
	}
	l.Fire(EventVisibilityChanged, v)
}

// Visible reports the layer's own visibility flag.
func (l *Layer) Visible() bool { return l.Enabled() }

// Opacity returns the layer-wide opacity multiplier in [0,1].
func (l *Layer) Opacity() float64 { return l.opacity }

// SetOpacity sets the layer-wide opacity multiplier, clamped to [0,1].
func (l *Layer) SetOpacity(o float64) {
	switch {
	case o < 0:
		o = 0
	case o > 1:
		o = 1
	}
	l.opacity = o
	l.Fire(EventChange, nil)
}

// ZOrder returns the layer's draw order (higher draws later/on top).
func (l *Layer) ZOrder() int { return l.zOrder }

// SetZOrder sets the layer's draw order.
func (l *Layer) SetZOrder(z int) {
	l.zOrder = z
	l.Fire(EventChange, nil)
}

// TimeRange returns the layer-wide availability bound, or nil if the
// layer is not time-bounded.
func (l *Layer) TimeRange() *AvailabilityWindow { return l.timeRange }

// SetTimeRange bounds the whole layer's eligibility to a window on top
// of each feature's own Availability (both must hold for a feature to
// draw).
func (l *Layer) SetTimeRange(w *AvailabilityWindow) {
	l.timeRange = w
	l.Fire(EventChange, nil)
}

// AddData attaches features to this layer via the Engine, as a
// convenience over calling f.AddTo(eng, layer) per feature (spec §4.C
// "layer.addData accepts one or many").
func (l *Layer) AddData(features ...Feature) {
	for _, f := range features {
		f.AddTo(l.eng, l)
	}
	l.Fire(EventDataChanged, nil)
}

// RemoveData detaches features previously added to this layer.
func (l *Layer) RemoveData(features ...Feature) {
	for _, f := range features {
		f.Remove()
	}
	l.Fire(EventDataChanged, nil)
}

// GetData looks up a member feature by id.
func (l *Layer) GetData(id FeatureID) (Feature, bool) {
	if _, ok := l.members[id]; !ok || l.eng == nil {
		return nil, false
	}
	return l.eng.entities.Get(id)
}

// GetAllData returns every feature currently belonging to this layer.
func (l *Layer) GetAllData() []Feature {
	if l.eng == nil {
		return nil
	}
	out := make([]Feature, 0, len(l.members))
	for id := range l.members {
		if f, ok := l.eng.entities.Get(id); ok {
			out = append(out, f)
		}
	}
	return out
}

// Count returns how many features currently belong to this layer.
func (l *Layer) Count() int { return len(l.members) }

func (l *Layer) addMember(id FeatureID) {
	l.members[id] = struct{}{}
	l.pending[id] = struct{}{}
}

func (l *Layer) removeMember(id FeatureID) {
	delete(l.members, id)
	delete(l.pending, id)
}

// markDirty flags id for re-evaluation on the next processUpdate (spec
// §4.I "pending-update queue"). Ids that are not members are ignored.
func (l *Layer) markDirty(id FeatureID) {
	if _, ok := l.members[id]; ok {
		l.pending[id] = struct{}{}
	}
}

// processUpdate drains the pending-update queue, recomputing each dirty
// feature's DrawHint and pushing it to the host entity collection, and
// returns how many entries were drained. With no viewer or no owning
// engine nothing is pushed, but the queue is still cleared and counted.
func (l *Layer) processUpdate(viewer Viewer) int {
	if len(l.pending) == 0 {
		return 0
	}
	n := len(l.pending)
	if viewer != nil && l.eng != nil {
		ents := viewer.Entities()
		for id := range l.pending {
			f, ok := l.eng.entities.Get(id)
			if !ok {
				continue
			}
			l.pushVisual(ents, f)
		}
	}
	l.pending = map[FeatureID]struct{}{}
	return n
}

// pushVisual resolves f's DrawHint via the unexported createVisual hook
// and mirrors it into the host entity collection.
func (l *Layer) pushVisual(ents ExternalEntities, f Feature) {
	draw := drawHintOf(f)
	var uniforms map[string]any
	if l.eng != nil {
		uniforms = l.eng.materials.Sample(draw.MaterialSig, time.Now())
	}
	_ = ents.Update(string(f.ID()), draw, uniforms)
}

// performCulling evaluates which members are eligible to draw at "now"
// and, if cam is non-nil, additionally inside the camera frustum, then
// groups the survivors into renderer.Batch values via the Engine's
// Renderer Factory (spec §4.I, §4.H). Call counts are recorded for the
// Engine's stats snapshot.
func (l *Layer) performCulling(cam Camera, now time.Time) []renderer.Batch {
	if l.eng == nil || !l.Enabled() {
		l.lastVisible, l.lastCulled = 0, len(l.members)
		l.lastBatches = nil
		return nil
	}
	if !l.timeRange.Contains(now) {
		l.lastVisible, l.lastCulled = 0, len(l.members)
		l.lastBatches = nil
		return nil
	}

	items := make([]renderer.DrawItem, 0, len(l.members))
	culled := 0
	for id := range l.members {
		f, ok := l.eng.entities.Get(id)
		if !ok || !f.Eligible(now) {
			culled++
			continue
		}
		if cam != nil {
			if p, ok := positionOf(f); ok && !cam.InFrustum(p) {
				culled++
				continue
			}
		}
		hint := drawHintOf(f)
		items = append(items, renderer.DrawItem{
			Key:           id,
			Kind:          string(hint.Kind),
			MaterialSig:   hint.MaterialSig,
			ClampToGround: hint.ClampToGround,
			Animated:      hint.Animated,
			PositionCount: len(hint.Positions),
		})
	}
	batches := l.eng.renderFactory.Select(items)
	l.lastVisible, l.lastCulled = len(items), culled
	l.lastBatches = batches
	return batches
}

// drawHintOf calls the unexported createVisual hook through the Feature
// interface; it is a tiny indirection point kept so performCulling and
// processUpdate share one call site.
func drawHintOf(f Feature) DrawHint {
	type visualizer interface{ createVisual() DrawHint }
	return f.(visualizer).createVisual()
}

// onLayerInteraction is the per-layer hook the Engine invokes on every
// other layer when some layer emits dataChanged/visibilityChanged (spec
// §4.J "layer-interaction broadcast"). The default is a no-op;
// SetInteractionHandler installs a reaction, e.g. a relation layer
// re-evaluating endpoints when a source-point layer's data changes.
func (l *Layer) onLayerInteraction(sourceLayerID LayerID, event EventType, data any) {
	if l.interactionHandler != nil {
		l.interactionHandler(sourceLayerID, event, data)
	}
}

// SetInteractionHandler installs the callback invoked when another layer
// reports dataChanged/visibilityChanged through the Engine's
// layer-interaction broadcast (spec §4.J).
func (l *Layer) SetInteractionHandler(fn func(sourceLayerID LayerID, event EventType, data any)) {
	l.interactionHandler = fn
}

// ExportConfig serializes the layer's settings (not its feature data) to
// a LayerConfig value the Engine can persist (spec §6 exportConfig).
func (l *Layer) ExportConfig() LayerConfig {
	return LayerConfig{
		ID:        string(l.id),
		Name:      l.name,
		Visible:   l.Visible(),
		Opacity:   l.opacity,
		ZOrder:    l.zOrder,
		TimeRange: l.timeRange,
	}
}

// ImportConfig applies a previously exported LayerConfig.
func (l *Layer) ImportConfig(cfg LayerConfig) {
	l.name = cfg.Name
	l.SetVisible(cfg.Visible)
	l.SetOpacity(cfg.Opacity)
	l.SetZOrder(cfg.ZOrder)
	l.SetTimeRange(cfg.TimeRange)
}
