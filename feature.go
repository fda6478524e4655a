package geovu

import "time"

// feature.go implements the Canonical Feature Model, component C: a tagged
// variant with a shared header plus kind-specific payloads (spec §3, §9
// "Graphic kinds are a tagged variant with shared header, not a class
// hierarchy"). Concrete kinds (component D) embed baseFeature the same
// way the teacher engine's Ent wraps a shared identity/dispose contract
// around per-kind component data (ent.go) instead of a class hierarchy.

// Kind tags a Feature's concrete payload.
type Kind string

const (
	KindPoint      Kind = "point"
	KindPolyline   Kind = "polyline"
	KindPolygon    Kind = "polygon"
	KindTrajectory Kind = "trajectory"
	KindRelation   Kind = "relation"
	KindEvent      Kind = "event"
	KindArea       Kind = "area"
	KindRoute      Kind = "route"
	KindModel      Kind = "model"
)

// supportedKinds is the order GetSupportedKinds reports in.
var supportedKinds = []Kind{
	KindPoint, KindPolyline, KindPolygon, KindTrajectory,
	KindRelation, KindEvent, KindArea, KindRoute, KindModel,
}

// GetSupportedKinds lists every Kind the factory can create (spec §4.C).
func GetSupportedKinds() []Kind {
	out := make([]Kind, len(supportedKinds))
	copy(out, supportedKinds)
	return out
}

// DrawHint is what a Feature exposes to the Renderer Factory (component H)
// when asked to create its visual: enough to compute a batching signature
// without the factory needing to know kind-specific internals.
type DrawHint struct {
	Kind            Kind
	MaterialSig     string
	ClampToGround   bool
	Animated        bool // true if an animated material-property is bound.
	Positions       []Position
}

// Feature is the common surface every graphic entity (component D) shares.
// Kind-specific behavior (positionAt, area, endpoints, ...) lives on the
// concrete *PointFeature, *PolylineFeature, etc. returned by the factory
// and Layer.AddData.
type Feature interface {
	ID() FeatureID
	Kind() Kind
	Header() *FeatureHeader

	Visible() bool
	SetVisible(bool)
	Interactive() bool
	SetInteractive(bool)
	Properties() map[string]any
	SetProperties(map[string]any)
	Style() *Style
	SetStyle(*Style)
	Availability() *AvailabilityWindow
	SetAvailability(*AvailabilityWindow)

	AddTo(eng *Engine, layer *Layer) Feature
	Remove() Feature
	Destroy()
	Exists() bool

	On(EventType, Listener) Subscription
	Off(EventType, Subscription)
	Fire(EventType, any)
	Enable()
	Disable()
	Toggle()

	ToJSON() ([]byte, error)

	// Eligible reports whether the feature is currently drawable: its own
	// visible flag is true and, if bounded, its availability window
	// contains t (spec §3 invariant 5's per-feature half; the owning
	// layer's visibility is checked by Layer/EntityManager).
	Eligible(t time.Time) bool

	// internal hooks invoked by the engine (spec §4.D); unexported so only
	// this package can satisfy Feature.
	createVisual() DrawHint
	updatePositionsHook()
	updateStyleHook()
}

// FeatureHeader is the data shared by every Feature kind (spec §3).
type FeatureHeader struct {
	ID          FeatureID
	Kind        Kind
	Name        string
	Visible     bool
	Interactive bool
	Properties  map[string]any
	Availability *AvailabilityWindow
	Style       *Style
	SourceRef   any
}

// baseFeature implements the common Feature surface; concrete kinds embed
// it and add their own payload plus kind-specific methods. self holds the
// outer concrete value so base methods can invoke the kind-specific hooks
// (createVisual, etc.) through the Feature interface — Go has no virtual
// dispatch from an embedded struct, so this self-reference stands in for
// it, set once by the factory/constructor.
type baseFeature struct {
	Lifecycle
	hdr FeatureHeader

	eng   *Engine
	layer *Layer
	self  Feature
}

func newBaseFeature(kind Kind, id FeatureID, name string) baseFeature {
	return baseFeature{
		Lifecycle: NewLifecycle(string(kind), nil),
		hdr: FeatureHeader{
			ID:         id,
			Kind:       kind,
			Name:       name,
			Visible:    true,
			Properties: map[string]any{},
			Style:      &Style{},
		},
	}
}

func (b *baseFeature) ID() FeatureID            { return b.hdr.ID }
func (b *baseFeature) Kind() Kind               { return b.hdr.Kind }
func (b *baseFeature) Header() *FeatureHeader    { return &b.hdr }
func (b *baseFeature) Visible() bool             { return b.hdr.Visible }
func (b *baseFeature) Interactive() bool         { return b.hdr.Interactive }
func (b *baseFeature) Properties() map[string]any { return b.hdr.Properties }
func (b *baseFeature) Style() *Style             { return b.hdr.Style }
func (b *baseFeature) Availability() *AvailabilityWindow { return b.hdr.Availability }
func (b *baseFeature) Exists() bool              { return !b.Destroyed() }

func (b *baseFeature) SetVisible(v bool) {
	if b.hdr.Visible == v {
		return
	}
	b.hdr.Visible = v
	if v {
		b.Fire(EventShow, nil)
	} else {
		b.Fire(EventHide, nil)
	}
	b.Fire(EventChange, nil)
}

func (b *baseFeature) SetInteractive(v bool) { b.hdr.Interactive = v }

func (b *baseFeature) SetProperties(p map[string]any) {
	b.hdr.Properties = p
	b.Fire(EventChange, nil)
}

func (b *baseFeature) SetStyle(s *Style) {
	b.hdr.Style = s
	if b.self != nil {
		b.self.updateStyleHook()
	}
	b.Fire(EventChange, nil)
}

func (b *baseFeature) SetAvailability(w *AvailabilityWindow) {
	b.hdr.Availability = w
	if b.layer != nil && b.eng != nil {
		b.eng.entities.reindexAvailability(b.hdr.ID, b.hdr.Kind, w)
	}
	b.Fire(EventChange, nil)
}

// Eligible implements the per-feature half of spec §3 invariant 5.
func (b *baseFeature) Eligible(t time.Time) bool {
	return b.hdr.Visible && b.hdr.Availability.Contains(t)
}

// attach performs the shared bookkeeping for every kind's AddTo: guard via
// Lifecycle.beginAdd, record engine/layer back-references (spec §9 "owning
// ids plus lookup tables" instead of cyclic pointers — here the pointers
// are fine since everything lives in one process, but features never walk
// "up" to enumerate siblings, only down through EntityManager lookups).
func (b *baseFeature) attach(eng *Engine, layer *Layer, self Feature) bool {
	b.self = self
	if eng != nil {
		if _, exists := eng.entities.Get(b.hdr.ID); exists {
			eng.log.warn("entities", "add", map[string]any{"id": b.hdr.ID}, "duplicate feature id, keeping prior instance")
			return false
		}
	}
	if !b.beginAdd() {
		return false
	}
	b.eng = eng
	b.layer = layer
	if eng != nil {
		eng.entities.Add(self)
	}
	if layer != nil {
		layer.addMember(self.ID())
	}
	return true
}

func (b *baseFeature) detach() bool {
	if !b.beginRemove() {
		return false
	}
	if b.eng != nil {
		b.eng.entities.Remove(b.hdr.ID)
	}
	if b.layer != nil {
		b.layer.removeMember(b.hdr.ID)
	}
	b.eng = nil
	b.layer = nil
	return true
}
