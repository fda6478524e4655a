package geovu

import (
	"fmt"
	"time"

	"github.com/geovu/geovu/material"
	"github.com/geovu/geovu/renderer"
	"github.com/geovu/geovu/timeline"
)

// engine.go implements the Engine, component J: the coordinator owning
// every Layer, the shared EntityManager/materialManager/Renderer Factory,
// and the Time Manager clock, driven by a caller-invoked Tick/MaybeCull
// pair instead of an OS event loop (spec §4.J).
//
// This replaces the teacher's eng.go Action() loop — that loop owns a
// real window and calls time.Sleep/SwapBuffers because vu manages its
// own OS window and GPU context. geovu has neither: the host application
// (running the external globe viewer's own render loop) calls Tick once
// per host frame instead. The accumulator shape of Action() is kept for
// the culling pass only: Tick advances the clock by exactly the dt the
// caller passes, and sums those dt values until they reach the active
// preset's cull cadence.

// EngineStats is the snapshot Engine.StatsSnapshot returns, grounded on
// the teacher's Timing/Profile "zero each update, report on demand"
// shape (timing.go, profile.go) generalized from GPU frame counters to
// this engine's own feature/layer/batch counters.
type EngineStats struct {
	TotalFeatures   int
	VisibleFeatures int
	CulledFeatures  int
	BatchedDraws    int
	InstancedDraws  int
	SingleDraws     int
	LayerCount      int
	LastCullTime    time.Duration
	FramesTicked    int
	Preset          PerformancePreset
}

// Engine coordinates every layer, the shared entity/material managers,
// and the time cursor (spec §4.J).
type Engine struct {
	Lifecycle
	log *Logger

	entities      *EntityManager
	materials     *materialManager
	renderFactory *renderer.Factory
	clock         *timeline.Clock

	layers map[LayerID]*Layer
	viewer Viewer

	preset PerformancePreset
	tuning presetTuning

	sinceLastCull time.Duration
	stats         EngineStats
}

// NewEngine constructs an Engine. It is not usable for rendering until
// Initialize binds a Viewer, but layers/features/materials can be built
// up beforehand (spec §4.J "engine construction is decoupled from viewer
// binding so tests and headless pipelines can build state without one").
func NewEngine(opts ...EngineOption) *Engine {
	o := engineOptions{preset: PresetBalanced}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		log = DefaultLogger()
	}
	e := &Engine{
		Lifecycle:     NewLifecycle("engine", log),
		log:           log,
		entities:      newEntityManager(log),
		materials:     newMaterialManager(log),
		renderFactory: renderer.NewFactory(),
		clock:         timeline.NewClock(time.Time{}, time.Time{}),
		layers:        map[LayerID]*Layer{},
		viewer:        o.viewer,
	}
	e.SetPerformancePreset(o.preset)
	e.Enable()
	return e
}

// Initialize binds the external Viewer. A nil viewer is an
// UnrecoverableError (spec §7): without a viewer the engine can build
// state but can never actually draw anything, so callers should treat
// construction as having failed.
func (e *Engine) Initialize(viewer Viewer) error {
	if viewer == nil {
		err := &UnrecoverableError{Reason: "Initialize called with a nil viewer"}
		e.Fire(EventError, err)
		return err
	}
	e.viewer = viewer
	e.Fire(EventInitialized, nil)
	return nil
}

// SetViewer rebinds the external Viewer, e.g. after a host reconnect.
func (e *Engine) SetViewer(viewer Viewer) { e.viewer = viewer }

// Viewer returns the currently bound external Viewer, or nil.
func (e *Engine) Viewer() Viewer { return e.viewer }

// Entities exposes the shared EntityManager (spec §4.G).
func (e *Engine) Entities() *EntityManager { return e.entities }

// Clock exposes the Time Manager (spec §4.F).
func (e *Engine) Clock() *timeline.Clock { return e.clock }

// MaterialFactory exposes the underlying material.Factory so callers can
// register custom variants. Returning the concrete manager type directly
// would leak an unexported type across the package boundary; the
// factory is the part callers actually need.
func (e *Engine) MaterialFactory() *material.Factory { return e.materials.Factory() }

// BindMaterial resolves and caches a material for sig (spec §4.E).
func (e *Engine) BindMaterial(sig, name string, params map[string]any) bool {
	_, ok := e.materials.Bind(sig, name, params)
	return ok
}

// AddLayer creates and registers a new Layer under id. A duplicate id
// replaces the previous layer after warning (unlike EntityManager.Add,
// which keeps the prior instance on a duplicate id). Subscribes the new layer's
// dataChanged/visibilityChanged events to the engine-wide
// layer-interaction broadcast (spec §4.J).
func (e *Engine) AddLayer(id LayerID, name string) *Layer {
	if _, exists := e.layers[id]; exists {
		e.log.warn("engine", "addLayer", map[string]any{"id": id}, "duplicate layer id, replacing")
	}
	l := NewLayer(id, name)
	l.eng = e
	e.layers[id] = l
	l.On(EventDataChanged, func(data any) { e.broadcastLayerInteraction(id, EventDataChanged, data) })
	l.On(EventVisibilityChanged, func(data any) { e.broadcastLayerInteraction(id, EventVisibilityChanged, data) })
	return l
}

// broadcastLayerInteraction fans a source layer's dataChanged/
// visibilityChanged event out to every other layer's onLayerInteraction
// hook and emits layerInteraction on the engine itself (spec §4.J
// "layer-interaction broadcast" — the default per-layer hook is a no-op,
// but it lets, e.g., a relation layer react to a source-point layer's
// movements).
func (e *Engine) broadcastLayerInteraction(sourceLayerID LayerID, event EventType, data any) {
	for id, l := range e.layers {
		if id == sourceLayerID {
			continue
		}
		l.onLayerInteraction(sourceLayerID, event, data)
	}
	e.Fire(EventLayerInteraction, map[string]any{
		"layer": sourceLayerID,
		"event": event,
		"data":  data,
	})
}

// RemoveLayer detaches and destroys a layer, removing its member
// features from the EntityManager as well.
func (e *Engine) RemoveLayer(id LayerID) {
	l, ok := e.layers[id]
	if !ok {
		return
	}
	for _, f := range l.GetAllData() {
		f.Remove()
	}
	l.Destroy()
	delete(e.layers, id)
}

// GetLayer looks up a layer by id.
func (e *Engine) GetLayer(id LayerID) (*Layer, bool) {
	l, ok := e.layers[id]
	return l, ok
}

// Layers returns every registered layer, in no particular order.
func (e *Engine) Layers() []*Layer {
	out := make([]*Layer, 0, len(e.layers))
	for _, l := range e.layers {
		out = append(out, l)
	}
	return out
}

// SetPerformancePreset switches tuning profile, adjusting the renderer
// factory's batching thresholds (spec §4.J).
func (e *Engine) SetPerformancePreset(p PerformancePreset) {
	tuning, ok := presetTunings[p]
	if !ok {
		e.log.warn("engine", "setPerformancePreset", map[string]any{"preset": p}, "unknown preset, keeping previous")
		return
	}
	e.preset = p
	e.tuning = tuning
	e.renderFactory.Thresholds = renderer.Thresholds{BatchMin: tuning.batchMin, InstanceMin: tuning.instanceMin}
}

// CurrentPerformancePreset reports the active preset.
func (e *Engine) CurrentPerformancePreset() PerformancePreset { return e.preset }

// Tick advances the Time Manager clock by dt and runs a culling pass once
// the dt values passed since the last one add up to the active preset's
// cull cadence (spec §4.J). This is the caller-driven
// analogue of the teacher's fixed-timestep Action loop accumulator
// (eng.go): the host calls Tick once per its own frame instead of this
// engine owning a blocking for-loop.
func (e *Engine) Tick(dt time.Duration) {
	e.clock.Advance(dt)
	e.sinceLastCull += dt
	e.stats.FramesTicked++
	if e.sinceLastCull >= e.tuning.cullEvery {
		e.MaybeCull()
		e.sinceLastCull = 0
	}
}

// MaybeCull forces an immediate culling pass across every layer
// regardless of the cadence Tick otherwise enforces, useful right after
// a bulk AddData call or a camera jump cut.
func (e *Engine) MaybeCull() {
	start := time.Now()
	total, visible, culled, batched, instanced, single := 0, 0, 0, 0, 0, 0
	var cam Camera
	if e.viewer != nil {
		cam = e.viewer.Camera()
	}
	now := e.clock.CurrentTime()
	if now.IsZero() {
		now = time.Now()
	}
	for _, l := range e.layers {
		batches := l.performCulling(cam, now)
		total += l.Count()
		visible += l.lastVisible
		culled += l.lastCulled
		for _, b := range batches {
			switch b.Strategy {
			case renderer.Batched:
				batched++
			case renderer.Instanced:
				instanced++
			default:
				single += len(b.Items)
			}
		}
		if e.viewer != nil {
			l.processUpdate(e.viewer)
		}
	}
	e.stats.TotalFeatures = total
	e.stats.VisibleFeatures = visible
	e.stats.CulledFeatures = culled
	e.stats.BatchedDraws = batched
	e.stats.InstancedDraws = instanced
	e.stats.SingleDraws = single
	e.stats.LayerCount = len(e.layers)
	e.stats.LastCullTime = time.Since(start)
	e.stats.Preset = e.preset
}

// StatsSnapshot returns a copy of the most recent performance counters
// (spec §4.J).
func (e *Engine) StatsSnapshot() EngineStats { return e.stats }

// PerformanceReport renders a short human-readable summary plus a
// recommendation, the same "Dump()" role the teacher's Timing/Profile
// types play for development debugging (timing.go, profile.go), except
// this one is meant to be surfaced to a caller rather than only printed.
func (e *Engine) PerformanceReport() string {
	s := e.stats
	report := fmt.Sprintf(
		"preset=%s layers=%d features=%d visible=%d culled=%d batched=%d instanced=%d single=%d lastCull=%s",
		s.Preset, s.LayerCount, s.TotalFeatures, s.VisibleFeatures, s.CulledFeatures,
		s.BatchedDraws, s.InstancedDraws, s.SingleDraws, s.LastCullTime)
	if rec := e.recommendation(); rec != "" {
		report += " recommendation=" + rec
	}
	return report
}

// recommendation gives a one-line suggestion when the current preset
// looks mismatched with the observed load (spec §4.J "recommendations
// report").
func (e *Engine) recommendation() string {
	s := e.stats
	switch {
	case s.Preset != PresetHighPerformance && s.TotalFeatures > 5000 && s.LastCullTime > 20*time.Millisecond:
		return "switch to high-performance preset: large feature count with slow culling"
	case s.Preset == PresetHighPerformance && s.TotalFeatures < 200:
		return "switch to high-quality preset: feature count is low enough to afford it"
	default:
		return ""
	}
}

// ExportConfig captures the engine's preset and every layer's settings.
func (e *Engine) ExportConfig() EngineConfig {
	cfg := EngineConfig{Preset: e.preset}
	for _, l := range e.layers {
		cfg.Layers = append(cfg.Layers, l.ExportConfig())
	}
	return cfg
}

// ImportConfig applies a previously exported EngineConfig, creating any
// layer that does not already exist.
func (e *Engine) ImportConfig(cfg EngineConfig) {
	e.SetPerformancePreset(cfg.Preset)
	for _, lc := range cfg.Layers {
		l, ok := e.GetLayer(LayerID(lc.ID))
		if !ok {
			l = e.AddLayer(LayerID(lc.ID), lc.Name)
		}
		l.ImportConfig(lc)
	}
}

// DispatchFeatureInteraction forwards a host-reported interaction
// (click, hover) against a feature to engine-level listeners, tagging it
// with the owning layer so a single handler can dispatch by layer, and
// re-fires the event on the feature itself. This is distinct from the
// layer-to-layer dataChanged/visibilityChanged broadcast in
// broadcastLayerInteraction (spec §4.J); that one fans out across
// layers, this one routes a single host-observed event down to one
// feature.
func (e *Engine) DispatchFeatureInteraction(layerID LayerID, featureID FeatureID, eventType EventType, data any) {
	e.Fire(EventLayerInteraction, map[string]any{
		"layer":   layerID,
		"feature": featureID,
		"event":   eventType,
		"data":    data,
	})
	if f, ok := e.entities.Get(featureID); ok {
		f.Fire(eventType, data)
	}
}
